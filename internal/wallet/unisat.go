package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Unisat-compatible bridges reject signing requests with this code when the
// user dismisses the prompt.
const codeUserRejected = 4001

// Bridge talks to a unisat-compatible wallet daemon over HTTP. The daemon
// proxies getPublicKey/signMessage to the actual wallet, so a signing call
// can block until the user approves or rejects it.
type Bridge struct {
	url  string
	http *http.Client
}

func NewBridge(url string) *Bridge {
	return &Bridge{
		url: url,
		// Signing waits on a human; give it room before timing out.
		http: &http.Client{Timeout: 2 * time.Minute},
	}
}

type bridgeRequest struct {
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

type bridgeResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *bridgeError    `json:"error"`
}

type bridgeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *bridgeError) Error() string {
	return fmt.Sprintf("wallet bridge error %d: %s", e.Code, e.Message)
}

func (b *Bridge) call(ctx context.Context, method string, params any, out any) error {
	body, err := json.Marshal(bridgeRequest{Method: method, Params: params})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("wallet bridge request: %w", err)
	}
	defer resp.Body.Close()

	var decoded bridgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("decode wallet bridge response: %w", err)
	}

	if decoded.Error != nil {
		if decoded.Error.Code == codeUserRejected {
			return fmt.Errorf("%w: %s", ErrSigningCancelled, decoded.Error.Message)
		}
		return decoded.Error
	}

	return json.Unmarshal(decoded.Result, out)
}

func (b *Bridge) GetPublicKey(ctx context.Context) (string, error) {
	var key string
	if err := b.call(ctx, "getPublicKey", nil, &key); err != nil {
		return "", err
	}
	return key, nil
}

func (b *Bridge) SignMessage(ctx context.Context, message string, mode SigningMode) (string, error) {
	params := map[string]string{
		"message": message,
		"type":    string(mode),
	}

	var signature string
	if err := b.call(ctx, "signMessage", params, &signature); err != nil {
		return "", err
	}
	return signature, nil
}

func (b *Bridge) Address(ctx context.Context) (string, error) {
	var accounts []string
	if err := b.call(ctx, "getAccounts", nil, &accounts); err != nil {
		return "", err
	}
	if len(accounts) == 0 {
		return "", errors.New("wallet has no accounts")
	}
	return accounts[0], nil
}
