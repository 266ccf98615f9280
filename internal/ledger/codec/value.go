package codec

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Field is a named position of a record value
type Field struct {
	Name  string
	Value Value
}

// Value is a decoded ledger value. Exactly one payload is set, selected by Kind.
type Value struct {
	kind    Kind
	num     *big.Int
	boolean bool
	str     string
	address common.Address
	bytes   []byte
	items   []Value
	fields  []Field
}

// Uint64Value builds an unsigned integer value
func Uint64Value(v uint64) Value {
	return Value{kind: KindUint, num: new(big.Int).SetUint64(v)}
}

// BigValue builds an integer value of the given kind
func BigValue(kind Kind, v *big.Int) Value {
	return Value{kind: kind, num: new(big.Int).Set(v)}
}

// StringValue builds a string value
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// AddressValue builds an address value
func AddressValue(a common.Address) Value {
	return Value{kind: KindAddress, address: a}
}

// Kind returns the value's tag
func (v Value) Kind() Kind {
	return v.kind
}

// IsZero reports whether the value was never populated
func (v Value) IsZero() bool {
	return v.kind == KindInvalid
}

// Float returns the value converted to the host floating point type.
// The conversion is exact up to 2^53-1; above that the nearest representable
// float64 is returned. Use BigInt or Uint64 where exactness matters.
func (v Value) Float() float64 {
	if v.num == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.num).Float64()
	return f
}

// BigInt returns a copy of the exact integer payload, or nil for non-integer values
func (v Value) BigInt() *big.Int {
	if v.num == nil {
		return nil
	}
	return new(big.Int).Set(v.num)
}

// Uint64 returns the integer payload, failing when it is negative or does not fit
func (v Value) Uint64() (uint64, error) {
	if v.kind != KindUint && v.kind != KindInt {
		return 0, fmt.Errorf("value of kind %s is not an integer", v.kind)
	}
	if v.num.Sign() < 0 || !v.num.IsUint64() {
		return 0, fmt.Errorf("integer %s does not fit in uint64", v.num.String())
	}
	return v.num.Uint64(), nil
}

// Bool returns the boolean payload
func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("value of kind %s is not a bool", v.kind)
	}
	return v.boolean, nil
}

// Str returns the string payload
func (v Value) Str() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("value of kind %s is not a string", v.kind)
	}
	return v.str, nil
}

// Address returns the address payload
func (v Value) Address() (common.Address, error) {
	if v.kind != KindAddress {
		return common.Address{}, fmt.Errorf("value of kind %s is not an address", v.kind)
	}
	return v.address, nil
}

// Bytes returns the byte payload
func (v Value) Bytes() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, fmt.Errorf("value of kind %s is not bytes", v.kind)
	}
	return v.bytes, nil
}

// Items returns the elements of an array value
func (v Value) Items() ([]Value, error) {
	if v.kind != KindArray {
		return nil, fmt.Errorf("value of kind %s is not an array", v.kind)
	}
	return v.items, nil
}

// Fields returns the ordered fields of a record value
func (v Value) Fields() []Field {
	return v.fields
}

// Field returns the named field of a record value
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Native converts the value into plain Go values suitable for JSON encoding:
// integers become decimal strings, addresses hex strings, records maps
func (v Value) Native() any {
	switch v.kind {
	case KindUint, KindInt:
		return v.num.String()
	case KindBool:
		return v.boolean
	case KindString:
		return v.str
	case KindAddress:
		return v.address.Hex()
	case KindBytes:
		return common.Bytes2Hex(v.bytes)
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Native()
		}
		return out
	case KindTuple:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Name] = f.Value.Native()
		}
		return out
	default:
		return nil
	}
}
