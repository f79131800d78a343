// Package rpc implements a minimal JSON-RPC 2.0 client for Ethereum-compatible
// nodes. It covers exactly the two methods this tool needs — eth_blockNumber
// and eth_getBlockByNumber — plus the hex parsing helpers required to turn the
// wire format into native Go types.
package rpc

import "encoding/json"

// Request is the JSON-RPC 2.0 request envelope.
//
// Params uses []interface{} because different RPC methods take different
// parameter types: eth_blockNumber takes none, eth_getBlockByNumber takes a
// block tag and a boolean. The ID is hardcoded to 1 everywhere since we use
// synchronous HTTP — one request, one response per call.
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

// Response is the JSON-RPC 2.0 response envelope.
//
// Result is json.RawMessage because its shape depends on the method called:
// eth_blockNumber returns a bare hex string, eth_getBlockByNumber returns a
// full block object. Decoding is deferred to the caller, who knows what to
// expect. Error is a pointer so that "no error" (nil) is distinguishable from
// an error object the server actually sent.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is an error object returned by the node. Negative codes are
// standard JSON-RPC errors (-32700 parse error, -32601 method not found, ...);
// Ethereum nodes also use custom codes like -32000.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Block holds the raw block header fields this tool cares about, exactly as
// they arrive on the wire. Every numeric field is a hex-encoded string — that
// is dictated by the Ethereum JSON-RPC specification, not a choice made here.
//
// BaseFeePerGas carries omitempty because pre-EIP-1559 blocks (and chains
// without the fee-market upgrade) have no base fee field at all; for those
// the string stays empty.
type Block struct {
	Number        string `json:"number"`
	Hash          string `json:"hash"`
	ParentHash    string `json:"parentHash"`
	Timestamp     string `json:"timestamp"`
	GasUsed       string `json:"gasUsed"`
	GasLimit      string `json:"gasLimit"`
	BaseFeePerGas string `json:"baseFeePerGas,omitempty"`
}
