// Package sse provides the Server-Sent Events framing of JSON-RPC
// responses. The RPC endpoint negotiates the framing from the Accept
// header: the payload bytes are the same either way, only the outer
// transport changes.
package sse

import (
	"fmt"
	"net/http"
	"strings"
)

// ContentType is the media type of an event-stream response.
const ContentType = "text/event-stream"

// Accepts reports whether an Accept header value asks for an
// event-stream response. Matching is by media type, ignoring
// parameters and whitespace; "*/*" alone does not opt in.
func Accepts(header string) bool {
	for _, part := range strings.Split(header, ",") {
		mediaType, _, _ := strings.Cut(part, ";")
		if strings.EqualFold(strings.TrimSpace(mediaType), ContentType) {
			return true
		}
	}
	return false
}

// Write sends payload as a single SSE data event with the given
// status code. The payload travels byte-identical to its plain-JSON
// framing; status and headers are committed before the event body.
func Write(w http.ResponseWriter, status int, payload []byte) error {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(status)

	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
