package arch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesMarshalAsNumberArray(t *testing.T) {
	raw, err := json.Marshal(Bytes{0, 127, 255})
	require.NoError(t, err)
	assert.JSONEq(t, "[0,127,255]", string(raw))
}

func TestBytesUnmarshalNumberArray(t *testing.T) {
	var b Bytes
	require.NoError(t, json.Unmarshal([]byte("[1,2,255]"), &b))
	assert.Equal(t, Bytes{1, 2, 255}, b)
}

func TestBytesUnmarshalBase64Fallback(t *testing.T) {
	var b Bytes
	require.NoError(t, json.Unmarshal([]byte(`"AQID"`), &b))
	assert.Equal(t, Bytes{1, 2, 3}, b)
}

func TestBytesUnmarshalRejectsOutOfRange(t *testing.T) {
	var b Bytes
	assert.Error(t, json.Unmarshal([]byte("[256]"), &b))
}

func TestPubkeyJSONRoundTrip(t *testing.T) {
	in := filled(0x5a)

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out Pubkey
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestPubkeyUnmarshalRejectsWrongLength(t *testing.T) {
	var pk Pubkey
	assert.ErrorIs(t, json.Unmarshal([]byte("[1,2,3]"), &pk), ErrInvalidKeyLength)
}
