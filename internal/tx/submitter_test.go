package tx

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbalbaharum/predictr-client/internal/arch"
	"github.com/iqbalbaharum/predictr-client/internal/rpc"
	"github.com/iqbalbaharum/predictr-client/internal/wallet"
)

type fakeWallet struct {
	signature string
	signErr   error

	signedMessage string
	signedMode    wallet.SigningMode
}

func (w *fakeWallet) GetPublicKey(ctx context.Context) (string, error) {
	return "02" + strings.Repeat("00", 32), nil
}

func (w *fakeWallet) SignMessage(ctx context.Context, message string, mode wallet.SigningMode) (string, error) {
	w.signedMessage = message
	w.signedMode = mode
	if w.signErr != nil {
		return "", w.signErr
	}
	return w.signature, nil
}

func (w *fakeWallet) Address(ctx context.Context) (string, error) {
	return "bc1qfake", nil
}

func framedSignature(t *testing.T) string {
	t.Helper()
	raw := append([]byte{0x01, 0x40}, make([]byte, 64)...)
	for i := 2; i < len(raw); i++ {
		raw[i] = byte(i)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func testMessage() *arch.Message {
	signer := arch.Pubkey{0x04}
	return arch.NewMessage([]arch.Pubkey{signer}, &arch.Instruction{
		ProgramID: arch.Pubkey{0x01},
		Accounts: []*arch.AccountMeta{
			arch.Meta(arch.Pubkey{0x02}).WRITE(),
			arch.Meta(signer).SIGNER(),
		},
		Data: arch.Bytes{0x03, 0x01},
	})
}

func nodeServer(t *testing.T, handler func(req rpc.RequestBody) rpc.ResponseBody) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpc.RequestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NoError(t, json.NewEncoder(w).Encode(handler(req)))
	}))
}

func TestNormalizeSignatureStripsWitnessFraming(t *testing.T) {
	encoded := framedSignature(t)

	raw, err := NormalizeSignature(encoded)
	require.NoError(t, err)

	require.Len(t, raw, 64)
	assert.Equal(t, byte(2), raw[0])
	assert.Equal(t, byte(65), raw[63])
}

func TestNormalizeSignatureRejectsBadBase64(t *testing.T) {
	_, err := NormalizeSignature("%%%not base64%%%")
	assert.ErrorIs(t, err, ErrSubmissionFailed)
}

func TestNormalizeSignatureRejectsTooShort(t *testing.T) {
	for _, raw := range [][]byte{{}, {0x01}, {0x01, 0x40}} {
		_, err := NormalizeSignature(base64.StdEncoding.EncodeToString(raw))
		assert.ErrorIs(t, err, ErrSubmissionFailed)
	}
}

func TestSubmitSignsMessageHashHex(t *testing.T) {
	server := nodeServer(t, func(req rpc.RequestBody) rpc.ResponseBody {
		return rpc.ResponseBody{Jsonrpc: "2.0", ID: 1, Result: json.RawMessage(`"txid1234"`)}
	})
	defer server.Close()

	w := &fakeWallet{signature: framedSignature(t)}
	submitter := NewSubmitter(rpc.NewClient(server.URL), w)

	msg := testMessage()
	txid, err := submitter.Submit(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, "txid1234", txid)

	assert.Equal(t, wallet.ModeBIP322Simple, w.signedMode)

	// The wallet signs the hex rendering of the message hash.
	hash := msg.Hash()
	assert.Equal(t, hex.EncodeToString(hash[:]), w.signedMessage)
}

func TestSubmitSendsNormalizedSignature(t *testing.T) {
	var sent struct {
		Version    int          `json:"version"`
		Signatures []arch.Bytes `json:"signatures"`
	}

	server := nodeServer(t, func(req rpc.RequestBody) rpc.ResponseBody {
		raw, err := json.Marshal(req.Params)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &sent))
		return rpc.ResponseBody{Jsonrpc: "2.0", ID: 1, Result: json.RawMessage(`"txid1234"`)}
	})
	defer server.Close()

	submitter := NewSubmitter(rpc.NewClient(server.URL), &fakeWallet{signature: framedSignature(t)})

	_, err := submitter.Submit(context.Background(), testMessage())
	require.NoError(t, err)

	assert.Equal(t, 0, sent.Version)
	require.Len(t, sent.Signatures, 1)
	assert.Len(t, []byte(sent.Signatures[0]), 64)
}

func TestSubmitCancellationPassesThrough(t *testing.T) {
	submitter := NewSubmitter(
		rpc.NewClient("http://127.0.0.1:1"),
		&fakeWallet{signErr: wallet.ErrSigningCancelled},
	)

	_, err := submitter.Submit(context.Background(), testMessage())
	assert.ErrorIs(t, err, wallet.ErrSigningCancelled)
	assert.NotErrorIs(t, err, ErrSubmissionFailed)
}

func TestSubmitWalletFailureIsSubmissionFailed(t *testing.T) {
	submitter := NewSubmitter(
		rpc.NewClient("http://127.0.0.1:1"),
		&fakeWallet{signErr: errors.New("bridge unreachable")},
	)

	_, err := submitter.Submit(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrSubmissionFailed)
}

func TestSubmitNodeRejectionIsSubmissionRejected(t *testing.T) {
	server := nodeServer(t, func(req rpc.RequestBody) rpc.ResponseBody {
		return rpc.ResponseBody{
			Jsonrpc: "2.0",
			ID:      1,
			Error:   &rpc.RPCError{Code: -32000, Message: "invalid signature"},
		}
	})
	defer server.Close()

	submitter := NewSubmitter(rpc.NewClient(server.URL), &fakeWallet{signature: framedSignature(t)})

	_, err := submitter.Submit(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrSubmissionRejected)
	assert.NotErrorIs(t, err, ErrSubmissionFailed)
}

func TestSubmitTransportFailureIsSubmissionFailed(t *testing.T) {
	submitter := NewSubmitter(
		rpc.NewClient("http://127.0.0.1:1"),
		&fakeWallet{signature: framedSignature(t)},
	)

	_, err := submitter.Submit(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrSubmissionFailed)
}

func TestSubmitShortOpaqueResultIsRejected(t *testing.T) {
	server := nodeServer(t, func(req rpc.RequestBody) rpc.ResponseBody {
		return rpc.ResponseBody{Jsonrpc: "2.0", ID: 1, Result: json.RawMessage(`{"err":1}`)}
	})
	defer server.Close()

	submitter := NewSubmitter(rpc.NewClient(server.URL), &fakeWallet{signature: framedSignature(t)})

	_, err := submitter.Submit(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrSubmissionRejected)
}

func TestSubmitLongOpaqueResultIsAccepted(t *testing.T) {
	long := `{"status":"processed","txid":"0000000000000000000000000000000000000000000000000000000000000000"}`

	server := nodeServer(t, func(req rpc.RequestBody) rpc.ResponseBody {
		return rpc.ResponseBody{Jsonrpc: "2.0", ID: 1, Result: json.RawMessage(long)}
	})
	defer server.Close()

	submitter := NewSubmitter(rpc.NewClient(server.URL), &fakeWallet{signature: framedSignature(t)})

	result, err := submitter.Submit(context.Background(), testMessage())
	require.NoError(t, err)
	assert.JSONEq(t, long, result)
}
