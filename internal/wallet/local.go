package wallet

import (
	"context"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"
)

// witnessHeader is the two-byte framing the browser wallets prepend to the
// 64-byte signature: a one-item witness stack with a 0x40-byte push. The
// submission protocol strips it before use, so the local signer emits the
// same shape to stay interchangeable with a real wallet.
var witnessHeader = []byte{0x01, 0x40}

// LocalWallet signs with an in-process secp256k1 key. Meant for development
// and automation where no interactive wallet is available.
type LocalWallet struct {
	key *ecdsa.PrivateKey
}

func NewLocalWallet(privateKeyHex string) (*LocalWallet, error) {
	key, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("parse wallet private key: %w", err)
	}
	return &LocalWallet{key: key}, nil
}

func (w *LocalWallet) GetPublicKey(ctx context.Context) (string, error) {
	return hex.EncodeToString(crypto.CompressPubkey(&w.key.PublicKey)), nil
}

func (w *LocalWallet) SignMessage(ctx context.Context, message string, mode SigningMode) (string, error) {
	if mode != ModeBIP322Simple {
		return "", fmt.Errorf("unsupported signing mode %q", mode)
	}

	digest := sha256.Sum256([]byte(message))
	sig, err := crypto.Sign(digest[:], w.key)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}

	// Drop the recovery byte, keep R||S, and wrap in witness framing.
	framed := append(append([]byte{}, witnessHeader...), sig[:64]...)
	return base64.StdEncoding.EncodeToString(framed), nil
}

// Address derives a base58check P2PKH address from the compressed public key.
func (w *LocalWallet) Address(ctx context.Context) (string, error) {
	compressed := crypto.CompressPubkey(&w.key.PublicKey)

	shaDigest := sha256.Sum256(compressed)
	ripemd := ripemd160.New()
	ripemd.Write(shaDigest[:])

	payload := append([]byte{0x00}, ripemd.Sum(nil)...)
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])

	return base58.Encode(append(payload, second[:4]...)), nil
}
