// Package tx turns a built message into an on-chain effect: hash, sign,
// normalize the signature, submit. Codec errors never reach this package;
// everything surfaced here is either a cancelled signature, a transport
// failure (retryable after rebuilding) or a rejection by the node.
package tx

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iqbalbaharum/predictr-client/internal/arch"
	"github.com/iqbalbaharum/predictr-client/internal/rpc"
	"github.com/iqbalbaharum/predictr-client/internal/wallet"
)

var (
	// ErrSubmissionFailed covers transport problems; the caller may rebuild
	// the message and try again.
	ErrSubmissionFailed = errors.New("transaction submission failed")
	// ErrSubmissionRejected means the node refused the transaction.
	ErrSubmissionRejected = errors.New("transaction rejected")
)

// signaturePrefixLen is the witness framing the wallet prepends to the raw
// 64-byte signature. The on-chain verifier does not expect it.
const signaturePrefixLen = 2

// minAcceptedResultLen is the legacy success heuristic: a transaction id
// rendered as JSON is well past this length, failure blobs are shorter. Used
// only when the result is not a plain txid string.
const minAcceptedResultLen = 60

const transactionVersion = 0

type Submitter struct {
	client *rpc.Client
	wallet wallet.Wallet
}

func NewSubmitter(client *rpc.Client, w wallet.Wallet) *Submitter {
	return &Submitter{client: client, wallet: w}
}

// Submit runs the full protocol on a built message and returns the
// transaction id. Cancellation by the user surfaces as
// wallet.ErrSigningCancelled, distinct from network errors; stale signatures
// are never reused because every call re-hashes and re-signs.
func (s *Submitter) Submit(ctx context.Context, msg *arch.Message) (string, error) {
	hash := msg.Hash()

	signature, err := s.wallet.SignMessage(ctx, hex.EncodeToString(hash[:]), wallet.ModeBIP322Simple)
	if err != nil {
		if errors.Is(err, wallet.ErrSigningCancelled) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	sigBytes, err := NormalizeSignature(signature)
	if err != nil {
		return "", err
	}

	result, err := s.client.SendTransaction(ctx, &arch.RuntimeTransaction{
		Version:    transactionVersion,
		Signatures: []arch.Bytes{sigBytes},
		Message:    msg,
	})
	if err != nil {
		var rpcErr *rpc.RPCError
		if errors.As(err, &rpcErr) {
			return "", fmt.Errorf("%w: %v", ErrSubmissionRejected, rpcErr)
		}
		return "", fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	return interpretResult(result)
}

// NormalizeSignature base64-decodes the wallet's response and strips the
// witness framing, leaving the raw signature bytes.
func NormalizeSignature(signature string) (arch.Bytes, error) {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: decode signature: %v", ErrSubmissionFailed, err)
	}

	if len(raw) <= signaturePrefixLen {
		return nil, fmt.Errorf("%w: signature too short: %d bytes", ErrSubmissionFailed, len(raw))
	}

	return arch.Bytes(raw[signaturePrefixLen:]), nil
}

// interpretResult prefers the structured result (a txid string); the length
// heuristic is kept only for wire compatibility with node versions that
// return an opaque blob.
func interpretResult(result json.RawMessage) (string, error) {
	var txid string
	if err := json.Unmarshal(result, &txid); err == nil && txid != "" {
		return txid, nil
	}

	if len(result) < minAcceptedResultLen {
		return "", fmt.Errorf("%w: unexpected result %s", ErrSubmissionRejected, string(result))
	}

	return string(result), nil
}
