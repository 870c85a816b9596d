// Package rpc implements the JSON-RPC 2.0 envelope and the method
// engine shared by the HTTP and stdio front ends. The engine owns the
// initialize / tools/list / tools/call state machine; transports only
// frame its responses.
package rpc

import (
	"bytes"
	"encoding/json"
)

// Version is the only protocol tag the gateway accepts.
const Version = "2.0"

// Reserved JSON-RPC 2.0 error codes. The gateway defines no codes of
// its own.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
)

// Request is an incoming JSON-RPC 2.0 envelope. The id is opaque: it
// is echoed back verbatim, string or number, and its presence is
// tracked separately so a request without one can be treated as a
// notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`

	idPresent bool
}

// UnmarshalJSON decodes the envelope and records whether an id field
// was present. An explicit null id decodes to a nil ID with idPresent
// set, so the null is echoed rather than dropped.
func (r *Request) UnmarshalJSON(data []byte) error {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return err
	}

	type plain struct {
		JSONRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.JSONRPC = raw.JSONRPC
	r.Method = raw.Method
	r.Params = raw.Params
	r.ID = nil
	r.idPresent = false

	rawID, ok := object["id"]
	if !ok {
		return nil
	}
	r.idPresent = true
	if bytes.Equal(bytes.TrimSpace(rawID), []byte("null")) {
		return nil
	}
	var parsed any
	if err := json.Unmarshal(rawID, &parsed); err != nil {
		return err
	}
	switch parsed.(type) {
	case string, float64:
		r.ID = parsed
	}
	return nil
}

// HasID reports whether the request carried an id field, making it a
// call rather than a notification.
func (r Request) HasID() bool {
	return r.idPresent
}

// Response is an outgoing JSON-RPC 2.0 envelope. Exactly one of Result
// or Error is set. ID is always serialized, null when the request id
// could not be extracted.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func resultResponse(id, result any) *Response {
	return &Response{JSONRPC: Version, ID: id, Result: result}
}

func errorResponse(id any, code int, message string) *Response {
	return &Response{JSONRPC: Version, ID: id, Error: &Error{Code: code, Message: message}}
}

// ServerInfo identifies the gateway in an initialize result.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult is returned by the initialize method.
type InitializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      ServerInfo     `json:"serverInfo"`
}

// ToolInfo describes one catalog entry in a tools/list result.
type ToolInfo struct {
	Name        string         `json:"name"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ToolsListResult is returned by the tools/list method.
type ToolsListResult struct {
	Tools []ToolInfo `json:"tools"`
}

// ToolsCallParams are the parameters of a tools/call request.
type ToolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ContentBlock is one content item of a tools/call result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolsCallResult is returned by the tools/call method. IsError marks
// tool-shaped failures; the transport status stays successful.
type ToolsCallResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError"`
}
