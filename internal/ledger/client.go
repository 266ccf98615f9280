package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/feral-file/ff-lifecycle-bridge/internal/adapter"
	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/codec"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/metrics"
)

const (
	defaultConfirmationTimeout = 2 * time.Minute
	defaultPollInterval        = time.Second
	maxPollInterval            = 10 * time.Second
)

// Config holds the ledger client configuration
type Config struct {
	ChainID             int64
	PrivateKey          string
	ConfirmationTimeout time.Duration
	PollInterval        time.Duration
}

// Client invokes lifecycle contract methods through their schema
//
//go:generate mockgen -source=client.go -destination=../mocks/ledger_client.go -package=mocks -mock_names=Client=MockLedgerClient
type Client interface {
	// Call invokes a read-only method and decodes its result
	Call(ctx context.Context, contract, method string, args ...interface{}) (codec.Value, error)

	// Transact submits a state-changing method, waits for confirmation and
	// returns the events emitted by the transaction
	Transact(ctx context.Context, contract, method string, args ...interface{}) ([]codec.Event, error)

	// Confirm looks up the receipt of a submitted transaction once and returns its events.
	// A transaction not mined yet yields domain.ErrNoReceipt; a reverted one ErrTransactionReverted.
	Confirm(ctx context.Context, contract string, txHash common.Hash) ([]codec.Event, error)

	// Address returns the address transactions are signed with
	Address() common.Address

	// Close closes the underlying connection
	Close()
}

type client struct {
	eth      adapter.EthClient
	registry *schema.Registry
	clock    adapter.Clock
	metrics  *metrics.Metrics

	key     *ecdsa.PrivateKey
	from    common.Address
	signer  types.Signer
	timeout time.Duration
	poll    time.Duration

	// sendMu serializes nonce assignment and submission
	sendMu sync.Mutex
}

// NewClient creates a ledger client signing with the configured key
func NewClient(cfg Config, eth adapter.EthClient, registry *schema.Registry, clock adapter.Clock, m *metrics.Metrics) (Client, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid ledger private key: %w", err)
	}
	if cfg.ChainID <= 0 {
		return nil, fmt.Errorf("invalid chain id: %d", cfg.ChainID)
	}

	timeout := cfg.ConfirmationTimeout
	if timeout <= 0 {
		timeout = defaultConfirmationTimeout
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	return &client{
		eth:      eth,
		registry: registry,
		clock:    clock,
		metrics:  m,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		signer:   types.LatestSignerForChainID(big.NewInt(cfg.ChainID)),
		timeout:  timeout,
		poll:     poll,
	}, nil
}

func (c *client) Address() common.Address {
	return c.from
}

func (c *client) Close() {
	c.eth.Close()
}

// Call invokes a read-only method and decodes the result against the schema outputs
func (c *client) Call(ctx context.Context, contractName, methodName string, args ...interface{}) (codec.Value, error) {
	contract, method, data, err := c.prepare(contractName, methodName, args)
	if err != nil {
		return codec.Value{}, err
	}
	if len(method.Outputs) == 0 {
		return codec.Value{}, domain.NewInternalError("ledger call",
			fmt.Errorf("%s.%s: %w", contractName, methodName, codec.ErrNoOutputs))
	}

	start := c.clock.Now()
	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		From: c.from,
		To:   &contract.Address,
		Data: data,
	}, nil)
	c.metrics.ObserveLedger(contractName, methodName, "call", c.clock.Since(start))
	if err != nil {
		return codec.Value{}, c.fail(contractName, methodName, err)
	}

	raw, err := contract.ABI.Methods[methodName].Outputs.UnpackValues(out)
	if err != nil {
		return codec.Value{}, c.fail(contractName, methodName,
			domain.NewInternalError("unpack result", fmt.Errorf("%s.%s: %w", contractName, methodName, err)))
	}

	return codec.Decode(method.Outputs, raw)
}

// Transact signs and submits a state-changing method and waits for its receipt.
// Gas estimation surfaces reverts before submission; a failed receipt is replayed
// as a call at its block to recover the revert reason.
func (c *client) Transact(ctx context.Context, contractName, methodName string, args ...interface{}) ([]codec.Event, error) {
	contract, method, data, err := c.prepare(contractName, methodName, args)
	if err != nil {
		return nil, err
	}
	if method.ReadOnly() {
		return nil, domain.NewInternalError("ledger transact",
			fmt.Errorf("%s.%s is %s", contractName, methodName, method.Mutability))
	}

	start := c.clock.Now()
	defer func() {
		c.metrics.ObserveLedger(contractName, methodName, "transact", c.clock.Since(start))
	}()

	msg := ethereum.CallMsg{
		From: c.from,
		To:   &contract.Address,
		Data: data,
	}

	tx, err := c.send(ctx, msg)
	if err != nil {
		return nil, c.fail(contractName, methodName, err)
	}

	logger.DebugCtx(ctx, "Ledger transaction submitted",
		zap.String("contract", contractName),
		zap.String("method", methodName),
		zap.String("txHash", tx.Hash().Hex()))

	// the transaction is out; the caller leaving must not abandon it before the timeout
	receipt, err := c.waitForReceipt(context.WithoutCancel(ctx), tx.Hash())
	if err != nil {
		return nil, c.fail(contractName, methodName, domain.NewInternalError("await confirmation", &PendingError{
			Contract: contractName,
			Method:   methodName,
			TxHash:   tx.Hash(),
			Err:      err,
		}))
	}

	if receipt.Status == types.ReceiptStatusFailed {
		_, replayErr := c.eth.CallContract(ctx, msg, receipt.BlockNumber)
		if replayErr == nil {
			replayErr = fmt.Errorf("transaction %s failed without revert reason", tx.Hash().Hex())
		}
		return nil, c.fail(contractName, methodName, replayErr)
	}

	return ExtractEvents(contract, receipt), nil
}

func (c *client) prepare(contractName, methodName string, args []interface{}) (*schema.Contract, schema.Method, []byte, error) {
	contract, err := c.registry.Contract(contractName)
	if err != nil {
		return nil, schema.Method{}, nil, err
	}
	method, err := contract.Method(methodName)
	if err != nil {
		return nil, schema.Method{}, nil, err
	}
	data, err := contract.ABI.Pack(methodName, args...)
	if err != nil {
		return nil, schema.Method{}, nil, domain.NewInternalError("pack arguments",
			fmt.Errorf("%s.%s: %w", contractName, methodName, err))
	}
	return contract, method, data, nil
}

func (c *client) send(ctx context.Context, msg ethereum.CallMsg) (*types.Transaction, error) {
	gas, err := c.eth.EstimateGas(ctx, msg)
	if err != nil {
		return nil, err
	}
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	nonce, err := c.eth.PendingNonceAt(ctx, c.from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       msg.To,
		Value:    big.NewInt(0),
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     msg.Data,
	})
	signed, err := types.SignTx(tx, c.signer, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return nil, err
	}

	return signed, nil
}

// waitForReceipt polls for the receipt with exponential backoff bounded by the confirmation timeout
func (c *client) waitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.poll
	bo.MaxInterval = maxPollInterval
	if bo.MaxInterval < c.poll {
		bo.MaxInterval = c.poll
	}
	bo.MaxElapsedTime = c.timeout
	bo.Clock = c.clock

	var receipt *types.Receipt
	operation := func() error {
		r, err := c.eth.TransactionReceipt(ctx, hash)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return domain.ErrNoReceipt
			}
			return err
		}
		receipt = r
		return nil
	}

	notify := func(err error, d time.Duration) {
		if errors.Is(err, domain.ErrNoReceipt) {
			return
		}
		logger.WarnCtx(ctx, "Receipt lookup failed, retrying",
			zap.String("txHash", hash.Hex()),
			zap.Error(err),
			zap.Duration("retryIn", d))
	}

	if err := backoff.RetryNotifyWithTimer(operation, backoff.WithContext(bo, ctx), notify, c.clock.NewTimer()); err != nil {
		return nil, fmt.Errorf("not confirmed within %s: %w", c.timeout, err)
	}

	return receipt, nil
}

// Confirm fetches the receipt of txHash and extracts the events it emitted
func (c *client) Confirm(ctx context.Context, contractName string, txHash common.Hash) ([]codec.Event, error) {
	contract, err := c.registry.Contract(contractName)
	if err != nil {
		return nil, err
	}

	receipt, err := c.eth.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("transaction %s: %w", txHash.Hex(), domain.ErrNoReceipt)
		}
		return nil, domain.NewInternalError("lookup receipt", fmt.Errorf("transaction %s: %w", txHash.Hex(), err))
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, fmt.Errorf("transaction %s: %w", txHash.Hex(), ErrTransactionReverted)
	}

	return ExtractEvents(contract, receipt), nil
}

func (c *client) fail(contractName, methodName string, err error) error {
	classified := Classify(methodName, err)
	c.metrics.IncLedgerError(contractName, methodName, string(domain.AsError(classified).Kind))
	return classified
}
