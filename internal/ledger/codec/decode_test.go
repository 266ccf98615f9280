package codec

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

func TestDecode_SingleUnnamedOutputIsUnwrapped(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		raw  any
	}{
		{"uint256", Uint(256), big.NewInt(42)},
		{"string", String(), "hello"},
		{"address", Address(), common.HexToAddress("0x1111111111111111111111111111111111111111")},
		{"bool", Bool(), true},
		{"uint256[]", ArrayOf(Uint(256)), []*big.Int{big.NewInt(1), big.NewInt(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputs := []Param{{Name: "", Type: tt.typ}}

			got, err := Decode(outputs, []any{tt.raw})
			require.NoError(t, err)

			want, err := DecodeField(outputs[0].Type, tt.raw)
			require.NoError(t, err)

			assert.Equal(t, want, got)
			assert.NotEqual(t, KindTuple, got.Kind())
		})
	}
}

func TestDecode_NamedOutputsBuildRecord(t *testing.T) {
	outputs := []Param{
		{Name: "id", Type: Uint(256)},
		{Name: "name", Type: String()},
		{Name: "", Type: Bool()},
	}

	got, err := Decode(outputs, []any{big.NewInt(7), "batch", false})
	require.NoError(t, err)
	require.Equal(t, KindTuple, got.Kind())

	id, ok := got.Field("id")
	require.True(t, ok)
	n, err := id.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), n)

	name, ok := got.Field("name")
	require.True(t, ok)
	s, err := name.Str()
	require.NoError(t, err)
	assert.Equal(t, "batch", s)

	_, ok = got.Field("_2")
	assert.True(t, ok)
}

func TestDecode_SingleNamedOutputIsRecord(t *testing.T) {
	got, err := Decode([]Param{{Name: "quantity", Type: Uint(256)}}, []any{big.NewInt(5)})
	require.NoError(t, err)
	assert.Equal(t, KindTuple, got.Kind())
}

func TestDecode_Failures(t *testing.T) {
	t.Run("zero outputs", func(t *testing.T) {
		_, err := Decode(nil, nil)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInternal))
		assert.ErrorIs(t, err, ErrNoOutputs)
	})

	t.Run("arity mismatch", func(t *testing.T) {
		_, err := Decode([]Param{{Type: Uint(256)}}, []any{big.NewInt(1), big.NewInt(2)})
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInternal))
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := Decode([]Param{{Type: Uint(256)}}, []any{"not a number"})
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInternal))
	})
}

func TestDecodeField_UintPrecision(t *testing.T) {
	maxSafe := new(big.Int).SetUint64(1<<53 - 1)
	v, err := DecodeField(Uint(256), maxSafe)
	require.NoError(t, err)
	assert.Equal(t, float64(1<<53-1), v.Float())

	small := []uint64{0, 1, 7, 1000, 1 << 32, 1<<53 - 2}
	for _, n := range small {
		v, err := DecodeField(Uint(256), new(big.Int).SetUint64(n))
		require.NoError(t, err)
		assert.Equal(t, float64(n), v.Float())
		exact, err := v.Uint64()
		require.NoError(t, err)
		assert.Equal(t, n, exact)
	}

	// above 2^53-1 the host conversion is the nearest double
	above := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 53), big.NewInt(1))
	v, err = DecodeField(Uint(256), above)
	require.NoError(t, err)
	assert.Equal(t, float64(1<<53), v.Float())
	assert.Equal(t, above.String(), v.BigInt().String(), "exact value is kept alongside")

	huge := new(big.Int).Lsh(big.NewInt(1), 200)
	v, err = DecodeField(Uint(256), huge)
	require.NoError(t, err)
	expected, _ := new(big.Float).SetInt(huge).Float64()
	assert.Equal(t, expected, v.Float())
	_, err = v.Uint64()
	assert.Error(t, err, "values beyond uint64 cannot be narrowed")
}

func TestDecodeField_NativeIntegerWidths(t *testing.T) {
	for _, raw := range []any{uint8(3), uint16(3), uint32(3), uint64(3), int64(3)} {
		v, err := DecodeField(Uint(64), raw)
		require.NoError(t, err)
		n, err := v.Uint64()
		require.NoError(t, err)
		assert.Equal(t, uint64(3), n)
	}

	_, err := DecodeField(Uint(64), int64(-1))
	assert.Error(t, err)

	v, err := DecodeField(Int(256), big.NewInt(-5))
	require.NoError(t, err)
	assert.Equal(t, "-5", v.BigInt().String())
}

func TestDecodeField_ArrayElementWise(t *testing.T) {
	v, err := DecodeField(ArrayOf(Uint(256)), []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)})
	require.NoError(t, err)
	items, err := v.Items()
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		n, err := item.Uint64()
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), n)
	}

	nested, err := DecodeField(ArrayOf(ArrayOf(String())), [][]string{{"a"}, {"b", "c"}})
	require.NoError(t, err)
	outer, err := nested.Items()
	require.NoError(t, err)
	require.Len(t, outer, 2)
	inner, err := outer[1].Items()
	require.NoError(t, err)
	require.Len(t, inner, 2)

	_, err = DecodeField(ArrayOf(Uint(256)), "not an array")
	assert.Error(t, err)
}

func TestDecodeField_TupleZipsComponents(t *testing.T) {
	tuple := TupleOf(
		Param{Name: "id", Type: Uint(256)},
		Param{Name: "owner", Type: Address()},
		Param{Name: "ids", Type: ArrayOf(Uint(256))},
	)
	owner := common.HexToAddress("0x2222222222222222222222222222222222222222")

	t.Run("positional array", func(t *testing.T) {
		v, err := DecodeField(tuple, []any{big.NewInt(9), owner, []*big.Int{big.NewInt(4)}})
		require.NoError(t, err)
		assertTuple(t, v, owner)
	})

	t.Run("generated struct", func(t *testing.T) {
		raw := struct {
			Id    *big.Int
			Owner common.Address
			Ids   []*big.Int
		}{big.NewInt(9), owner, []*big.Int{big.NewInt(4)}}
		v, err := DecodeField(tuple, raw)
		require.NoError(t, err)
		assertTuple(t, v, owner)
	})

	t.Run("component count mismatch", func(t *testing.T) {
		_, err := DecodeField(tuple, []any{big.NewInt(9)})
		assert.Error(t, err)
	})
}

func assertTuple(t *testing.T, v Value, owner common.Address) {
	t.Helper()
	require.Equal(t, KindTuple, v.Kind())
	require.Len(t, v.Fields(), 3)

	id, _ := v.Field("id")
	n, err := id.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(9), n)

	o, _ := v.Field("owner")
	a, err := o.Address()
	require.NoError(t, err)
	assert.Equal(t, owner, a)

	ids, _ := v.Field("ids")
	items, err := ids.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestDecode_AgainstABIUnpack(t *testing.T) {
	const def = `[{"type":"function","name":"getBatch","stateMutability":"view",
		"inputs":[{"name":"id","type":"uint256"}],
		"outputs":[{"name":"","type":"tuple","components":[
			{"name":"id","type":"uint256"},
			{"name":"name","type":"string"},
			{"name":"owner","type":"address"},
			{"name":"tags","type":"string[]"}]}]}]`

	parsed, err := abi.JSON(strings.NewReader(def))
	require.NoError(t, err)
	method := parsed.Methods["getBatch"]

	owner := common.HexToAddress("0x3333333333333333333333333333333333333333")
	type batch struct {
		Id    *big.Int
		Name  string
		Owner common.Address
		Tags  []string
	}
	packed, err := method.Outputs.Pack(batch{Id: big.NewInt(11), Name: "cullet", Owner: owner, Tags: []string{"green", "clear"}})
	require.NoError(t, err)

	raw, err := method.Outputs.UnpackValues(packed)
	require.NoError(t, err)

	outputs, err := ParamsFromABI(method.Outputs)
	require.NoError(t, err)

	v, err := Decode(outputs, raw)
	require.NoError(t, err)
	require.Equal(t, KindTuple, v.Kind(), "single unnamed tuple output is the tuple itself")

	name, ok := v.Field("name")
	require.True(t, ok)
	s, err := name.Str()
	require.NoError(t, err)
	assert.Equal(t, "cullet", s)

	tags, _ := v.Field("tags")
	items, err := tags.Items()
	require.NoError(t, err)
	assert.Len(t, items, 2)

	native := v.Native().(map[string]any)
	assert.Equal(t, "11", native["id"])
	assert.Equal(t, owner.Hex(), native["owner"])
}

func TestFromABI_Unsupported(t *testing.T) {
	typ, err := abi.NewType("function", "", nil)
	require.NoError(t, err)
	_, err = FromABI(typ)
	assert.Error(t, err)
}
