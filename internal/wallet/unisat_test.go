package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bridgeServer(t *testing.T, handler func(req bridgeRequest) bridgeResponse) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req bridgeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NoError(t, json.NewEncoder(w).Encode(handler(req)))
	}))
}

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestBridgeGetPublicKey(t *testing.T) {
	server := bridgeServer(t, func(req bridgeRequest) bridgeResponse {
		assert.Equal(t, "getPublicKey", req.Method)
		return bridgeResponse{Result: rawJSON(t, "02abcd")}
	})
	defer server.Close()

	key, err := NewBridge(server.URL).GetPublicKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "02abcd", key)
}

func TestBridgeSignMessagePassesModeAndMessage(t *testing.T) {
	server := bridgeServer(t, func(req bridgeRequest) bridgeResponse {
		assert.Equal(t, "signMessage", req.Method)

		params, ok := req.Params.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "deadbeef", params["message"])
		assert.Equal(t, "bip322-simple", params["type"])

		return bridgeResponse{Result: rawJSON(t, "c2lnbmF0dXJl")}
	})
	defer server.Close()

	signature, err := NewBridge(server.URL).SignMessage(context.Background(), "deadbeef", ModeBIP322Simple)
	require.NoError(t, err)
	assert.Equal(t, "c2lnbmF0dXJl", signature)
}

func TestBridgeUserRejectionMapsToCancellation(t *testing.T) {
	server := bridgeServer(t, func(req bridgeRequest) bridgeResponse {
		return bridgeResponse{Error: &bridgeError{Code: 4001, Message: "user rejected"}}
	})
	defer server.Close()

	_, err := NewBridge(server.URL).SignMessage(context.Background(), "deadbeef", ModeBIP322Simple)
	assert.ErrorIs(t, err, ErrSigningCancelled)
}

func TestBridgeOtherErrorsAreNotCancellation(t *testing.T) {
	server := bridgeServer(t, func(req bridgeRequest) bridgeResponse {
		return bridgeResponse{Error: &bridgeError{Code: -32000, Message: "wallet locked"}}
	})
	defer server.Close()

	_, err := NewBridge(server.URL).SignMessage(context.Background(), "deadbeef", ModeBIP322Simple)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSigningCancelled)
}

func TestBridgeAddressUsesFirstAccount(t *testing.T) {
	server := bridgeServer(t, func(req bridgeRequest) bridgeResponse {
		assert.Equal(t, "getAccounts", req.Method)
		return bridgeResponse{Result: rawJSON(t, []string{"bc1qfirst", "bc1qsecond"})}
	})
	defer server.Close()

	address, err := NewBridge(server.URL).Address(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bc1qfirst", address)
}

func TestBridgeAddressNoAccounts(t *testing.T) {
	server := bridgeServer(t, func(req bridgeRequest) bridgeResponse {
		return bridgeResponse{Result: rawJSON(t, []string{})}
	})
	defer server.Close()

	_, err := NewBridge(server.URL).Address(context.Background())
	assert.Error(t, err)
}
