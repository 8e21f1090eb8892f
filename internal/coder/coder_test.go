package coder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	schema := Struct(
		F("id", FixedBytes(4)),
		F("count", U32),
		F("amount", U64),
		F("delta", I64),
		F("flag", U8),
		F("name", Str),
		F("maybe", Option(U8)),
		F("items", Sequence(U64)),
		F("labels", Map(Str, U32)),
	)

	in := Values{
		"id":     []byte{0xde, 0xad, 0xbe, 0xef},
		"count":  uint32(7),
		"amount": uint64(1_000_000),
		"delta":  int64(-42),
		"flag":   uint8(1),
		"name":   "hello",
		"maybe":  uint8(9),
		"items":  []any{uint64(1), uint64(2), uint64(3)},
		"labels": []MapEntry{
			{Key: "b", Value: uint32(2)},
			{Key: "a", Value: uint32(1)},
		},
	}

	raw, err := Encode(in, schema)
	require.NoError(t, err)

	out, err := Decode(raw, schema)
	require.NoError(t, err)

	vals := out.(Values)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, vals["id"])
	assert.Equal(t, uint32(7), vals["count"])
	assert.Equal(t, uint64(1_000_000), vals["amount"])
	assert.Equal(t, int64(-42), vals["delta"])
	assert.Equal(t, uint8(1), vals["flag"])
	assert.Equal(t, "hello", vals["name"])
	assert.Equal(t, uint8(9), vals["maybe"])
	assert.Equal(t, []any{uint64(1), uint64(2), uint64(3)}, vals["items"])
	assert.Equal(t, []MapEntry{
		{Key: "b", Value: uint32(2)},
		{Key: "a", Value: uint32(1)},
	}, vals["labels"])
}

func TestEncodeIsDeterministic(t *testing.T) {
	schema := Struct(
		F("a", U32),
		F("b", Str),
		F("c", Map(Str, U64)),
	)

	in := Values{
		"a": uint32(5),
		"b": "x",
		"c": []MapEntry{
			{Key: "k2", Value: uint64(2)},
			{Key: "k1", Value: uint64(1)},
		},
	}

	first, err := Encode(in, schema)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Encode(in, schema)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEncodeLittleEndianLayout(t *testing.T) {
	raw, err := Encode(Values{"n": uint32(0x01020304)}, Struct(F("n", U32)))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, raw)

	raw, err = Encode(Values{"s": "ab"}, Struct(F("s", Str)))
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 0, 0, 0, 'a', 'b'}, raw)
}

func TestEncodeOptionFlag(t *testing.T) {
	schema := Option(U64)

	raw, err := Encode(nil, schema)
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, raw)

	raw, err = Encode(uint64(1), schema)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 1, 0, 0, 0, 0, 0, 0, 0}, raw)
}

func TestEncodeFixedBytesLengthMismatch(t *testing.T) {
	_, err := Encode(Values{"id": []byte{1, 2, 3}}, Struct(F("id", FixedBytes(4))))
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestEncodeIntegerOverflow(t *testing.T) {
	_, err := Encode(Values{"n": uint64(256)}, Struct(F("n", U8)))
	assert.ErrorIs(t, err, ErrIntegerOverflow)

	_, err = Encode(Values{"n": int(-1)}, Struct(F("n", U32)))
	assert.ErrorIs(t, err, ErrIntegerOverflow)
}

func TestEncodeUnsupportedValue(t *testing.T) {
	_, err := Encode(Values{"n": "nope"}, Struct(F("n", U32)))
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestDecodeTruncatedInput(t *testing.T) {
	schema := Struct(F("amount", U64))

	_, err := Decode([]byte{1, 2, 3}, schema)
	assert.ErrorIs(t, err, ErrTruncatedInput)

	// String length prefix claims more bytes than exist.
	_, err = Decode([]byte{10, 0, 0, 0, 'a'}, Struct(F("s", Str)))
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestDecodeUnknownOptionFlag(t *testing.T) {
	_, err := Decode([]byte{2}, Option(U8))
	assert.ErrorIs(t, err, ErrUnknownEnumTag)
}

func TestDecodeToleratesTrailingBytes(t *testing.T) {
	schema := Struct(F("n", U32))

	raw, err := Encode(Values{"n": uint32(9)}, schema)
	require.NoError(t, err)

	padded := append(raw, make([]byte, 128)...)

	out, err := Decode(padded, schema)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), out.(Values)["n"])
}
