package codec

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

// ErrNoOutputs is returned when a schema entry declares no outputs for a call expected to produce a value
var ErrNoOutputs = errors.New("schema entry declares no outputs")

// Decode maps a raw positional result onto the schema outputs.
//
// A single unnamed output is returned as the decoded scalar itself, not wrapped in a
// record; callers branch on this convention. Every other shape becomes a record with one
// field per output position, unnamed positions being named "_<index>".
func Decode(outputs []Param, raw []any) (Value, error) {
	if len(outputs) == 0 {
		return Value{}, domain.NewInternalError("decode result", ErrNoOutputs)
	}
	if len(raw) != len(outputs) {
		return Value{}, domain.NewInternalError("decode result",
			fmt.Errorf("schema declares %d outputs, result has %d", len(outputs), len(raw)))
	}

	if len(outputs) == 1 && outputs[0].Name == "" {
		v, err := DecodeField(outputs[0].Type, raw[0])
		if err != nil {
			return Value{}, domain.NewInternalError("decode result", err)
		}
		return v, nil
	}

	fields, err := decodeFields(outputs, raw)
	if err != nil {
		return Value{}, domain.NewInternalError("decode result", err)
	}
	return Value{kind: KindTuple, fields: fields}, nil
}

// DecodeField decodes one raw value against its schema type
func DecodeField(t Type, raw any) (Value, error) {
	switch t.Kind {
	case KindUint, KindInt:
		n, err := toBigInt(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", t.Raw, err)
		}
		if t.Kind == KindUint && n.Sign() < 0 {
			return Value{}, fmt.Errorf("%s: negative value %s", t.Raw, n.String())
		}
		return Value{kind: t.Kind, num: n}, nil

	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, fmt.Errorf("%s: expected bool, got %T", t.Raw, raw)
		}
		return Value{kind: KindBool, boolean: b}, nil

	case KindString:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("%s: expected string, got %T", t.Raw, raw)
		}
		return Value{kind: KindString, str: s}, nil

	case KindAddress:
		a, err := toAddress(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", t.Raw, err)
		}
		return Value{kind: KindAddress, address: a}, nil

	case KindBytes:
		b, err := toBytes(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", t.Raw, err)
		}
		return Value{kind: KindBytes, bytes: b}, nil

	case KindArray:
		if t.Elem == nil {
			return Value{}, fmt.Errorf("%s: array without element type", t.Raw)
		}
		rv := reflect.ValueOf(raw)
		if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
			return Value{}, fmt.Errorf("%s: expected array, got %T", t.Raw, raw)
		}
		if t.Size > 0 && rv.Len() != t.Size {
			return Value{}, fmt.Errorf("%s: expected %d elements, got %d", t.Raw, t.Size, rv.Len())
		}
		items := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := DecodeField(*t.Elem, rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("%s[%d]: %w", t.Raw, i, err)
			}
			items[i] = item
		}
		return Value{kind: KindArray, items: items}, nil

	case KindTuple:
		positional, err := tuplePositions(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", t.Raw, err)
		}
		if len(positional) != len(t.Fields) {
			return Value{}, fmt.Errorf("%s: expected %d components, got %d", t.Raw, len(t.Fields), len(positional))
		}
		fields, err := decodeFields(t.Fields, positional)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", t.Raw, err)
		}
		return Value{kind: KindTuple, fields: fields}, nil

	default:
		return Value{}, fmt.Errorf("unsupported type %q", t.Raw)
	}
}

func decodeFields(params []Param, raw []any) ([]Field, error) {
	fields := make([]Field, len(params))
	for i, p := range params {
		v, err := DecodeField(p.Type, raw[i])
		if err != nil {
			return nil, fmt.Errorf("field %d (%s): %w", i, p.Name, err)
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("_%d", i)
		}
		fields[i] = Field{Name: name, Value: v}
	}
	return fields, nil
}

// tuplePositions turns a raw tuple into its positional components.
// go-ethereum unpacks tuples into generated structs whose fields follow component order.
func tuplePositions(raw any) ([]any, error) {
	if positional, ok := raw.([]any); ok {
		return positional, nil
	}

	rv := reflect.ValueOf(raw)
	for rv.IsValid() && rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, errors.New("nil tuple")
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected tuple, got %T", raw)
	}

	positional := make([]any, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		positional[i] = rv.Field(i).Interface()
	}
	return positional, nil
}

func toBigInt(raw any) (*big.Int, error) {
	switch v := raw.(type) {
	case *big.Int:
		if v == nil {
			return nil, errors.New("nil integer")
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", raw)
	}
}

func toAddress(raw any) (common.Address, error) {
	switch v := raw.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		if v == nil {
			return common.Address{}, errors.New("nil address")
		}
		return *v, nil
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, fmt.Errorf("invalid address %q", v)
		}
		return common.HexToAddress(v), nil
	default:
		return common.Address{}, fmt.Errorf("expected address, got %T", raw)
	}
}

func toBytes(raw any) ([]byte, error) {
	switch v := raw.(type) {
	case []byte:
		return common.CopyBytes(v), nil
	case common.Hash:
		return v.Bytes(), nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		out := make([]byte, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = byte(rv.Index(i).Uint())
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected bytes, got %T", raw)
}
