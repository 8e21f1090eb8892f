// Package rpc is the JSON-RPC 2.0 client for the node. The client is
// constructed explicitly and passed to its consumers; there is no package
// level connection.
package rpc

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iqbalbaharum/predictr-client/internal/arch"
)

type RequestBody struct {
	Jsonrpc string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type ResponseBody struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is a structured rejection from the node, as opposed to a transport
// failure. Callers distinguish the two with errors.As.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// AccountInfo is the decoded read_account_info result. Data arrives as a
// number array and is unmarshalled into raw bytes.
type AccountInfo struct {
	Owner        arch.Pubkey `json:"owner"`
	Data         arch.Bytes  `json:"data"`
	Utxo         string      `json:"utxo"`
	IsExecutable bool        `json:"is_executable"`
}

type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Call(ctx context.Context, method string, params any) (*ResponseBody, error) {
	reqBody, err := json.Marshal(RequestBody{
		Jsonrpc: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc %s: %w", method, err)
	}
	defer resp.Body.Close()

	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	var responseBody ResponseBody
	if err := json.Unmarshal(body, &responseBody); err != nil {
		return nil, fmt.Errorf("rpc %s: decode response: %w", method, err)
	}

	if responseBody.Error != nil {
		return nil, responseBody.Error
	}

	return &responseBody, nil
}

// ReadAccountInfo fetches the raw state of one account. A null result means
// the account does not exist yet; callers treat that the same as empty data.
func (c *Client) ReadAccountInfo(ctx context.Context, pubkey arch.Pubkey) (*AccountInfo, error) {
	response, err := c.Call(ctx, "read_account_info", pubkey)
	if err != nil {
		return nil, err
	}

	if len(response.Result) == 0 || string(response.Result) == "null" {
		return nil, nil
	}

	var info AccountInfo
	if err := json.Unmarshal(response.Result, &info); err != nil {
		return nil, fmt.Errorf("decode account info: %w", err)
	}

	return &info, nil
}

// SendTransaction submits a signed transaction and returns the node's raw
// result for the caller to interpret.
func (c *Client) SendTransaction(ctx context.Context, tx *arch.RuntimeTransaction) (json.RawMessage, error) {
	response, err := c.Call(ctx, "send_transaction", tx)
	if err != nil {
		return nil, err
	}
	return response.Result, nil
}

func (c *Client) GetAccountAddress(ctx context.Context, pubkey arch.Pubkey) (string, error) {
	response, err := c.Call(ctx, "get_account_address", pubkey)
	if err != nil {
		return "", err
	}

	var address string
	if err := json.Unmarshal(response.Result, &address); err != nil {
		return "", fmt.Errorf("decode account address: %w", err)
	}

	return address, nil
}

func (c *Client) GetBestBlockHash(ctx context.Context) (string, error) {
	response, err := c.Call(ctx, "get_best_block_hash", nil)
	if err != nil {
		return "", err
	}

	var hash string
	if err := json.Unmarshal(response.Result, &hash); err != nil {
		return "", fmt.Errorf("decode best block hash: %w", err)
	}

	return hash, nil
}
