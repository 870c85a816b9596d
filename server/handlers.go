package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rationsmart/rationsmart/probe"
	"github.com/rationsmart/rationsmart/sse"
	"github.com/rationsmart/rationsmart/tool"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "rationsmart-gateway",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	snapshot := probe.Snapshot{Backend: probe.StateUnknown}
	if s.prober != nil {
		snapshot = s.prober.Snapshot()
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.engine.ToolList()})
}

// handleCallTool is the flat non-RPC invocation endpoint. It shares
// the dispatcher with the RPC surface, so a tool behaves identically
// through either.
func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("rejected tool call body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Missing 'name' field")
		return
	}

	text := s.engine.Dispatcher().Dispatch(r.Context(), req.Name, tool.Arguments(req.Arguments))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": !tool.IsErrorText(text),
		"result":  text,
	})
}

// handleRPC runs the JSON-RPC state machine and negotiates the
// response framing from the Accept header. Both framings carry the
// same status code and byte-identical JSON payload.
func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Warn("failed to read rpc body", "error", err)
		writeError(w, http.StatusBadRequest, "Unable to read request body")
		return
	}

	resp, status := s.engine.Exchange(r.Context(), body)
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to encode rpc response", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal encoding error")
		return
	}

	if sse.Accepts(r.Header.Get("Accept")) {
		if err := sse.Write(w, status, payload); err != nil {
			s.logger.Warn("failed to write event stream", "error", err)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
