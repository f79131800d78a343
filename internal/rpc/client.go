package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a JSON-RPC client bound to a single endpoint. Every call shares
// one http.Client with a fixed timeout configured at construction. There is
// no retry: a failed call is reported once and the run aborts.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) URL() string { return c.url }

// Call executes a single JSON-RPC request and returns the decoded envelope.
func (c *Client) Call(ctx context.Context, method string, params ...interface{}) (*Response, error) {
	if params == nil {
		params = []interface{}{}
	}

	req := Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}

	body, _ := json.Marshal(req)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP %d", httpResp.StatusCode)
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("RPC error %d: %s", resp.Error.Code, resp.Error.Message)
	}

	return &resp, nil
}

// BlockNumber fetches the current chain head height. It doubles as the
// startup liveness probe: if this call fails the endpoint is unreachable.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	resp, err := c.Call(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}

	var hexStr string
	if err := json.Unmarshal(resp.Result, &hexStr); err != nil {
		return 0, fmt.Errorf("invalid block number result: %w", err)
	}

	return ParseHexUint64(hexStr)
}

// GetBlock fetches a block header by number (hex string like "0x123" or
// "latest"). Transaction bodies are not requested. A null result means the
// identifier did not resolve to an existing block.
func (c *Client) GetBlock(ctx context.Context, blockArg string) (*Block, error) {
	resp, err := c.Call(ctx, "eth_getBlockByNumber", blockArg, false)
	if err != nil {
		return nil, err
	}

	if bytes.Equal(bytes.TrimSpace(resp.Result), []byte("null")) {
		return nil, fmt.Errorf("block %s not found", blockArg)
	}

	var block Block
	if err := json.Unmarshal(resp.Result, &block); err != nil {
		return nil, fmt.Errorf("invalid block result: %w", err)
	}

	return &block, nil
}
