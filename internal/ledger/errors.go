package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

// revertRule maps a substring of a ledger revert reason onto an error constructor
type revertRule struct {
	match string
	build func(reason string, cause error) *domain.Error
}

// revertRules is evaluated in order; the first match wins
var revertRules = []revertRule{
	{
		match: "insufficient quantity",
		build: func(_ string, cause error) *domain.Error {
			return domain.NewDomainError(domain.CodeInsufficientAvailableQuantity, cause)
		},
	},
	{
		match: "already in use",
		build: func(_ string, cause error) *domain.Error {
			return domain.NewConflictError(domain.CodeAlreadyInUse, cause)
		},
	},
}

// ErrTransactionReverted is returned by Confirm for a mined transaction that failed
var ErrTransactionReverted = errors.New("transaction reverted")

// PendingError reports a submitted transaction whose receipt was not seen in time.
// It may still be mined.
type PendingError struct {
	Contract string
	Method   string
	TxHash   common.Hash
	Err      error
}

func (e *PendingError) Error() string {
	return fmt.Sprintf("%s.%s transaction %s unconfirmed: %v", e.Contract, e.Method, e.TxHash.Hex(), e.Err)
}

func (e *PendingError) Unwrap() error {
	return e.Err
}

// AsPending returns the pending transaction carried by err, if any
func AsPending(err error) (*PendingError, bool) {
	var pending *PendingError
	if errors.As(err, &pending) {
		return pending, true
	}
	return nil, false
}

// RevertError carries the decoded revert reason of a ledger call
type RevertError struct {
	Method string
	Reason string
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("%s reverted: %s", e.Method, e.Reason)
}

// dataError is implemented by JSON-RPC errors that carry revert data
type dataError interface {
	ErrorData() interface{}
}

// Classify maps a ledger failure onto the error taxonomy.
// Reasons not covered by revertRules become internal errors carrying the raw message.
func Classify(method string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}

	reason := revertReason(err)
	cause := error(&RevertError{Method: method, Reason: reason})
	lower := strings.ToLower(reason)
	for _, rule := range revertRules {
		if strings.Contains(lower, rule.match) {
			return rule.build(reason, cause)
		}
	}

	return domain.NewInternalError(fmt.Sprintf("ledger %s failed", method), fmt.Errorf("%s: %w", reason, err))
}

// revertReason extracts the human readable reason from a ledger error.
// ABI-encoded Error(string) payloads are decoded; otherwise the message is
// stripped of the node's "execution reverted" prefix.
func revertReason(err error) string {
	var de dataError
	if errors.As(err, &de) {
		if reason, ok := unpackRevertData(de.ErrorData()); ok {
			return reason
		}
	}

	msg := err.Error()
	for _, prefix := range []string{"execution reverted: ", "execution reverted:", "VM Exception while processing transaction: revert "} {
		if idx := strings.Index(msg, prefix); idx >= 0 {
			return strings.TrimSpace(msg[idx+len(prefix):])
		}
	}
	return msg
}

func unpackRevertData(data interface{}) (string, bool) {
	var raw []byte
	switch v := data.(type) {
	case string:
		b, err := hexutil.Decode(v)
		if err != nil {
			return "", false
		}
		raw = b
	case []byte:
		raw = v
	default:
		return "", false
	}

	reason, err := abi.UnpackRevert(raw)
	if err != nil {
		return "", false
	}
	return reason, true
}
