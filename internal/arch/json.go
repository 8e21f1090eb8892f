package arch

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// The node's JSON-RPC surface exchanges raw bytes as arrays of numbers, not
// base64 strings. Bytes and Pubkey carry that convention so wire structs can
// be marshalled with plain encoding/json.

type Bytes []byte

func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(byteSliceToInts(b))
}

func (b *Bytes) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		// Some endpoints return base64 strings instead of number arrays.
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("decode base64 bytes: %w", err)
		}
		*b = raw
		return nil
	}

	var ints []uint16
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}

	raw := make([]byte, len(ints))
	for i, v := range ints {
		if v > 0xff {
			return fmt.Errorf("byte value out of range: %d", v)
		}
		raw[i] = byte(v)
	}

	*b = raw
	return nil
}

func (p Pubkey) MarshalJSON() ([]byte, error) {
	return json.Marshal(byteSliceToInts(p[:]))
}

func (p *Pubkey) UnmarshalJSON(data []byte) error {
	var b Bytes
	if err := b.UnmarshalJSON(data); err != nil {
		return err
	}

	pk, err := PubkeyFromBytes(b)
	if err != nil {
		return err
	}

	*p = pk
	return nil
}

func byteSliceToInts(b []byte) []uint16 {
	ints := make([]uint16, len(b))
	for i, v := range b {
		ints[i] = uint16(v)
	}
	return ints
}
