// Package wallet defines the signing capability used to authorize
// transactions. Providers are selected explicitly at startup; the submission
// protocol only sees this interface.
package wallet

import (
	"context"
	"errors"
	"fmt"
)

type SigningMode string

// ModeBIP322Simple is the message-signing protocol the on-chain verifier
// expects.
const ModeBIP322Simple SigningMode = "bip322-simple"

// ErrSigningCancelled is returned when the user rejects the signing request.
// It is terminal for the attempt: the caller must rebuild and re-sign, never
// reuse a stale hash.
var ErrSigningCancelled = errors.New("signing cancelled by user")

type Wallet interface {
	// GetPublicKey returns the compressed public key as hex, including the
	// one-byte parity prefix. Use XOnly to obtain the 32-byte wire form.
	GetPublicKey(ctx context.Context) (string, error)

	// SignMessage signs the message string under the given protocol and
	// returns the signature base64-encoded, wrapped in the wallet's witness
	// framing.
	SignMessage(ctx context.Context, message string, mode SigningMode) (string, error)

	// Address returns the provider's receive address.
	Address(ctx context.Context) (string, error)
}

// XOnly strips the parity prefix from a compressed public key hex string,
// leaving the 64 hex characters of the x coordinate.
func XOnly(compressedHex string) (string, error) {
	if len(compressedHex) != 66 {
		return "", fmt.Errorf("unexpected public key length %d, want 66 hex characters", len(compressedHex))
	}
	return compressedHex[2:], nil
}
