package arch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubkeyFromHexRoundTrip(t *testing.T) {
	hex := strings.Repeat("ab", 32)

	pk, err := PubkeyFromHex(hex)
	require.NoError(t, err)
	assert.Equal(t, hex, pk.String())
	assert.False(t, pk.IsZero())
}

func TestPubkeyFromHexRejectsBadInput(t *testing.T) {
	_, err := PubkeyFromHex("not hex")
	assert.Error(t, err)

	_, err = PubkeyFromHex("abcd")
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	_, err = PubkeyFromHex(strings.Repeat("ab", 33))
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestMustPubkeyFromHexPanicsOnBadInput(t *testing.T) {
	assert.NotPanics(t, func() { MustPubkeyFromHex(strings.Repeat("00", 32)) })
	assert.Panics(t, func() { MustPubkeyFromHex("abcd") })
}

func TestPubkeyFromBytes(t *testing.T) {
	raw := make([]byte, 32)
	raw[0] = 0xff

	pk, err := PubkeyFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, pk.Bytes())

	_, err = PubkeyFromBytes(raw[:31])
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestUniqueIDFromStringUUID(t *testing.T) {
	id := UniqueIDFromString("123e4567-e89b-12d3-a456-426614174000")

	// Dashes stripped, 32 remaining characters fill the buffer exactly.
	assert.Equal(t, []byte("123e4567e89b12d3a456426614174000"), id.Bytes())
}

func TestUniqueIDFromStringShortInputZeroPadded(t *testing.T) {
	id := UniqueIDFromString("abc")

	assert.Equal(t, byte('a'), id[0])
	assert.Equal(t, byte('c'), id[2])
	for i := 3; i < 32; i++ {
		assert.Zero(t, id[i])
	}
}

func TestUniqueIDFromStringLongInputTruncated(t *testing.T) {
	id := UniqueIDFromString(strings.Repeat("x", 50))

	assert.Equal(t, []byte(strings.Repeat("x", 32)), id.Bytes())
}

func TestUniqueIDToStringInverts(t *testing.T) {
	assert.Equal(t, "abc", UniqueIDToString(UniqueIDFromString("abc")))
	assert.Equal(t,
		"123e4567e89b12d3a456426614174000",
		UniqueIDToString(UniqueIDFromString("123e4567-e89b-12d3-a456-426614174000")),
	)
}
