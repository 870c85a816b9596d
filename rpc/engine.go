package rpc

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rationsmart/rationsmart/tool"
)

const (
	serverName    = "RationSmart Tools"
	serverVersion = "0.1.0"

	// defaultProtocolVersion is echoed when the caller omits one.
	defaultProtocolVersion = "2024-11-05"
)

// Engine runs the JSON-RPC method state machine over the shared tool
// dispatcher. One engine serves every transport; it holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	dispatcher *tool.Dispatcher
	logger     *slog.Logger
}

// NewEngine creates an engine over dispatcher. A nil logger falls back
// to slog.Default().
func NewEngine(dispatcher *tool.Dispatcher, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{dispatcher: dispatcher, logger: logger}
}

// Dispatcher exposes the underlying dispatcher for listings.
func (e *Engine) Dispatcher() *tool.Dispatcher {
	return e.dispatcher
}

// Exchange runs one request body through the state machine and returns
// the response envelope plus the HTTP status it maps to. Malformed
// envelopes are rejected here with the reserved codes; everything that
// reaches a tool handler comes back as a tool-shaped result with
// status 200.
func (e *Engine) Exchange(ctx context.Context, body []byte) (*Response, int) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		if json.Valid(body) {
			// Well-formed JSON that is not a request object.
			e.logger.Warn("rejected non-object rpc body")
			return errorResponse(nil, CodeInvalidRequest, "Invalid Request"), http.StatusBadRequest
		}
		e.logger.Warn("rejected unparsable rpc body")
		return errorResponse(nil, CodeParseError, "Parse error"), http.StatusBadRequest
	}
	return e.exchange(ctx, req)
}

// ExchangeLine runs one line of a stdio session. Requests without an
// id are notifications and return nil; a malformed line still gets a
// parse-error response with a null id so the peer sees the reject.
func (e *Engine) ExchangeLine(ctx context.Context, line []byte) *Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		if json.Valid(line) {
			e.logger.Warn("rejected non-object rpc line")
			return errorResponse(nil, CodeInvalidRequest, "Invalid Request")
		}
		e.logger.Warn("rejected unparsable rpc line")
		return errorResponse(nil, CodeParseError, "Parse error")
	}
	resp, _ := e.exchange(ctx, req)
	if !req.HasID() {
		return nil
	}
	return resp
}

func (e *Engine) exchange(ctx context.Context, req Request) (*Response, int) {
	if req.JSONRPC != Version || req.Method == "" {
		e.logger.Warn("rejected invalid rpc request", "jsonrpc", req.JSONRPC, "method", req.Method)
		return errorResponse(req.ID, CodeInvalidRequest, "Invalid Request"), http.StatusBadRequest
	}

	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, e.initialize(req.Params)), http.StatusOK
	case "tools/list":
		return resultResponse(req.ID, ToolsListResult{Tools: e.ToolList()}), http.StatusOK
	case "tools/call":
		return e.callTool(ctx, req)
	default:
		e.logger.Warn("rejected unknown rpc method", "method", req.Method)
		return errorResponse(req.ID, CodeMethodNotFound, "Method not found"), http.StatusNotFound
	}
}

func (e *Engine) initialize(params json.RawMessage) InitializeResult {
	requested := struct {
		ProtocolVersion string `json:"protocolVersion"`
	}{}
	if len(params) > 0 {
		_ = json.Unmarshal(params, &requested)
	}
	version := requested.ProtocolVersion
	if version == "" {
		version = defaultProtocolVersion
	}
	return InitializeResult{
		ProtocolVersion: version,
		Capabilities: map[string]any{
			"tools": map[string]any{"list": true, "call": true},
		},
		ServerInfo: ServerInfo{Name: serverName, Version: serverVersion},
	}
}

// ToolList renders the catalog in registry order. The auxiliary
// /tools endpoint shares this view.
func (e *Engine) ToolList() []ToolInfo {
	descriptors := e.dispatcher.Registry().Descriptors()
	tools := make([]ToolInfo, 0, len(descriptors))
	for _, d := range descriptors {
		tools = append(tools, ToolInfo{
			Name:        d.Name,
			Title:       d.Title,
			Description: d.Description,
			InputSchema: d.InputSchema(),
		})
	}
	return tools
}

func (e *Engine) callTool(ctx context.Context, req Request) (*Response, int) {
	var params ToolsCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, CodeInvalidParams, "Missing tool name"), http.StatusBadRequest
		}
	}
	if params.Name == "" {
		return errorResponse(req.ID, CodeInvalidParams, "Missing tool name"), http.StatusBadRequest
	}

	text := e.dispatcher.Dispatch(ctx, params.Name, tool.Arguments(params.Arguments))
	result := ToolsCallResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
		IsError: tool.IsErrorText(text),
	}
	return resultResponse(req.ID, result), http.StatusOK
}
