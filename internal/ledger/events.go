package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/codec"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger/schema"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
)

// ExtractEvents decodes the logs of a confirmed receipt against the contract schema.
// Each log is parsed on its own; logs that do not match a declared event or fail to
// decode are skipped, so the result may be shorter than receipt.Logs.
func ExtractEvents(contract *schema.Contract, receipt *types.Receipt) []codec.Event {
	if receipt == nil {
		return nil
	}

	events := make([]codec.Event, 0, len(receipt.Logs))
	for _, log := range receipt.Logs {
		if log == nil {
			continue
		}
		event, err := parseLog(contract, log)
		if err != nil {
			logger.Debug("Skipping undecodable log",
				zap.String("contract", contract.Name),
				zap.String("txHash", log.TxHash.Hex()),
				zap.Uint("logIndex", log.Index),
				zap.Error(err))
			continue
		}
		events = append(events, event)
	}

	return events
}

func parseLog(contract *schema.Contract, log *types.Log) (codec.Event, error) {
	if contract.Address != (common.Address{}) && log.Address != contract.Address {
		return codec.Event{}, fmt.Errorf("log emitted by %s, not %s", log.Address.Hex(), contract.Address.Hex())
	}
	if len(log.Topics) == 0 {
		return codec.Event{}, fmt.Errorf("log has no topics")
	}

	abiEvent, err := contract.ABI.EventByID(log.Topics[0])
	if err != nil {
		return codec.Event{}, err
	}
	schemaEvent, ok := contract.Event(abiEvent.Name)
	if !ok {
		return codec.Event{}, fmt.Errorf("event %s not in schema", abiEvent.Name)
	}

	nonIndexed, err := abiEvent.Inputs.NonIndexed().UnpackValues(log.Data)
	if err != nil {
		return codec.Event{}, fmt.Errorf("failed to unpack data of %s: %w", abiEvent.Name, err)
	}

	topics := log.Topics[1:]
	args := make([]codec.Field, len(abiEvent.Inputs))
	topicIdx, dataIdx := 0, 0
	for i, input := range abiEvent.Inputs {
		param := schemaEvent.Inputs[i]
		name := input.Name
		if name == "" {
			name = fmt.Sprintf("_%d", i)
		}

		var value codec.Value
		if input.Indexed {
			if topicIdx >= len(topics) {
				return codec.Event{}, fmt.Errorf("%s: missing topic for %s", abiEvent.Name, name)
			}
			value, err = decodeTopic(input, param.Type, topics[topicIdx])
			topicIdx++
		} else {
			if dataIdx >= len(nonIndexed) {
				return codec.Event{}, fmt.Errorf("%s: missing data for %s", abiEvent.Name, name)
			}
			value, err = codec.DecodeField(param.Type, nonIndexed[dataIdx])
			dataIdx++
		}
		if err != nil {
			return codec.Event{}, fmt.Errorf("%s.%s: %w", abiEvent.Name, name, err)
		}
		args[i] = codec.Field{Name: name, Value: value}
	}

	return codec.Event{
		Name:     abiEvent.Name,
		Contract: contract.Name,
		LogIndex: log.Index,
		Args:     args,
	}, nil
}

// decodeTopic recovers an indexed argument. Dynamic types are stored as their
// keccak256 hash, which is all that can be returned for them.
func decodeTopic(input abi.Argument, t codec.Type, topic common.Hash) (codec.Value, error) {
	switch t.Kind {
	case codec.KindString, codec.KindArray, codec.KindTuple:
		return codec.DecodeField(codec.Bytes(), topic.Bytes())
	case codec.KindBytes:
		if t.Size == 0 {
			return codec.DecodeField(codec.Bytes(), topic.Bytes())
		}
	}

	out := make(map[string]interface{}, 1)
	arg := input
	arg.Name = "value"
	if err := abi.ParseTopicsIntoMap(out, abi.Arguments{arg}, []common.Hash{topic}); err != nil {
		return codec.Value{}, err
	}
	return codec.DecodeField(t, out["value"])
}

// FindFirstArg returns argument idx of the first event with the given name,
// or fallback when no such event (or argument) exists
func FindFirstArg(events []codec.Event, name string, idx int, fallback codec.Value) codec.Value {
	if v, ok := FindArg(events, name, idx); ok {
		return v
	}
	return fallback
}

// FindArg returns argument idx of the first event with the given name
// and reports whether it was found
func FindArg(events []codec.Event, name string, idx int) (codec.Value, bool) {
	for _, e := range events {
		if e.Name != name {
			continue
		}
		return e.Arg(idx)
	}
	return codec.Value{}, false
}
