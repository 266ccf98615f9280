package codec

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Kind is the tag of the type AST
type Kind int

const (
	KindInvalid Kind = iota
	KindUint
	KindInt
	KindBool
	KindAddress
	KindString
	KindBytes
	KindArray
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindAddress:
		return "address"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	default:
		return "invalid"
	}
}

// Type is a node of the schema type AST: Uint | Int | Bool | Address | String | Bytes | Array(elem) | Tuple(fields)
type Type struct {
	Kind Kind
	// Raw is the schema type tag, e.g. "uint256", "uint256[]" or "(uint256,string)"
	Raw string
	// Size is the bit width for integers, the byte length for fixed bytes
	// and the length for fixed arrays (0 = dynamic)
	Size int
	// Elem is the element type of an array
	Elem *Type
	// Fields are the ordered components of a tuple
	Fields []Param
}

// Param is a named, typed schema position (function input/output or event argument)
type Param struct {
	Name    string
	Type    Type
	Indexed bool
}

// Uint returns an unsigned integer type of the given bit width
func Uint(bits int) Type {
	return Type{Kind: KindUint, Raw: fmt.Sprintf("uint%d", bits), Size: bits}
}

// Int returns a signed integer type of the given bit width
func Int(bits int) Type {
	return Type{Kind: KindInt, Raw: fmt.Sprintf("int%d", bits), Size: bits}
}

// Bool returns the boolean type
func Bool() Type {
	return Type{Kind: KindBool, Raw: "bool"}
}

// Address returns the address type
func Address() Type {
	return Type{Kind: KindAddress, Raw: "address"}
}

// String returns the string type
func String() Type {
	return Type{Kind: KindString, Raw: "string"}
}

// Bytes returns a dynamic byte string type
func Bytes() Type {
	return Type{Kind: KindBytes, Raw: "bytes"}
}

// ArrayOf returns a dynamic array of elem
func ArrayOf(elem Type) Type {
	return Type{Kind: KindArray, Raw: elem.Raw + "[]", Elem: &elem}
}

// TupleOf returns a tuple of the given components
func TupleOf(fields ...Param) Type {
	raws := make([]string, len(fields))
	for i, f := range fields {
		raws[i] = f.Type.Raw
	}
	return Type{Kind: KindTuple, Raw: "(" + strings.Join(raws, ",") + ")", Fields: fields}
}

// FromABI converts a go-ethereum ABI type into the type AST
func FromABI(t abi.Type) (Type, error) {
	raw := t.String()
	switch t.T {
	case abi.UintTy:
		return Type{Kind: KindUint, Raw: raw, Size: t.Size}, nil
	case abi.IntTy:
		return Type{Kind: KindInt, Raw: raw, Size: t.Size}, nil
	case abi.BoolTy:
		return Type{Kind: KindBool, Raw: raw}, nil
	case abi.AddressTy:
		return Type{Kind: KindAddress, Raw: raw}, nil
	case abi.StringTy:
		return Type{Kind: KindString, Raw: raw}, nil
	case abi.BytesTy:
		return Type{Kind: KindBytes, Raw: raw}, nil
	case abi.FixedBytesTy, abi.HashTy:
		return Type{Kind: KindBytes, Raw: raw, Size: t.Size}, nil
	case abi.SliceTy, abi.ArrayTy:
		if t.Elem == nil {
			return Type{}, fmt.Errorf("array type %s has no element type", raw)
		}
		elem, err := FromABI(*t.Elem)
		if err != nil {
			return Type{}, err
		}
		size := 0
		if t.T == abi.ArrayTy {
			size = t.Size
		}
		return Type{Kind: KindArray, Raw: raw, Size: size, Elem: &elem}, nil
	case abi.TupleTy:
		fields := make([]Param, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			ft, err := FromABI(*elem)
			if err != nil {
				return Type{}, err
			}
			name := ""
			if i < len(t.TupleRawNames) {
				name = t.TupleRawNames[i]
			}
			fields[i] = Param{Name: name, Type: ft}
		}
		return Type{Kind: KindTuple, Raw: raw, Fields: fields}, nil
	default:
		return Type{}, fmt.Errorf("unsupported abi type: %s", raw)
	}
}

// ParamsFromABI converts ABI arguments into ordered params
func ParamsFromABI(args abi.Arguments) ([]Param, error) {
	params := make([]Param, len(args))
	for i, arg := range args {
		t, err := FromABI(arg.Type)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arg.Name, err)
		}
		params[i] = Param{Name: arg.Name, Type: t, Indexed: arg.Indexed}
	}
	return params, nil
}
