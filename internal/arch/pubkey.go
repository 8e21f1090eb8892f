package arch

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// PubkeyLength is the wire size of every on-chain identifier: public keys,
// market ids and user ids all travel as 32 raw bytes.
const PubkeyLength = 32

var ErrInvalidKeyLength = errors.New("invalid key length")

type Pubkey [PubkeyLength]byte

func PubkeyFromHex(s string) (Pubkey, error) {
	var pk Pubkey

	raw, err := hex.DecodeString(s)
	if err != nil {
		return pk, fmt.Errorf("decode pubkey hex: %w", err)
	}

	if len(raw) != PubkeyLength {
		return pk, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeyLength, PubkeyLength, len(raw))
	}

	copy(pk[:], raw)
	return pk, nil
}

func MustPubkeyFromHex(s string) Pubkey {
	pk, err := PubkeyFromHex(s)
	if err != nil {
		panic(err)
	}
	return pk
}

func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var pk Pubkey

	if len(b) != PubkeyLength {
		return pk, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeyLength, PubkeyLength, len(b))
	}

	copy(pk[:], b)
	return pk, nil
}

// UniqueIDFromString maps a UUID-like string onto the fixed 32-byte wire
// identifier. Separators are stripped and the remaining characters are placed
// at the start of a zeroed buffer; anything past 32 bytes is dropped. A
// 32-character hex UUID without dashes fits exactly, shorter inputs are
// zero-padded on the right.
func UniqueIDFromString(s string) Pubkey {
	var id Pubkey
	copy(id[:], strings.ReplaceAll(s, "-", ""))
	return id
}

// UniqueIDToString recovers the original text of an identifier produced by
// UniqueIDFromString by trimming the zero padding.
func UniqueIDToString(id [PubkeyLength]byte) string {
	return string(bytes.TrimRight(id[:], "\x00"))
}

func (p Pubkey) Bytes() []byte {
	return p[:]
}

func (p Pubkey) String() string {
	return hex.EncodeToString(p[:])
}

func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

func (p Pubkey) Equals(other Pubkey) bool {
	return p == other
}
