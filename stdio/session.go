// Package stdio runs the line-delimited JSON-RPC session: one request
// envelope per input line, one response envelope per output line. It
// shares the rpc engine with the HTTP front end, so tools behave
// identically over either transport.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/rationsmart/rationsmart/rpc"
)

// maxLineBytes bounds a single request line. Tool arguments are small;
// anything larger is a protocol violation, not a real call.
const maxLineBytes = 1 << 20

// Config configures a Session. Engine, In, and Out are required; a nil
// Logger falls back to slog.Default().
type Config struct {
	Engine *rpc.Engine
	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
}

// Session reads request lines from In and writes response lines to
// Out until In ends or the context is cancelled. Output lines are
// serialized through a mutex so writers cannot interleave.
type Session struct {
	engine *rpc.Engine
	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	writeMu sync.Mutex
}

// NewSession creates a session over the given streams.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("stdio: engine is required")
	}
	if cfg.In == nil || cfg.Out == nil {
		return nil, fmt.Errorf("stdio: input and output streams are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{engine: cfg.Engine, in: cfg.In, out: cfg.Out, logger: logger}, nil
}

// Run processes the stream to completion. It returns nil on a clean
// end of input and the scanner error otherwise. Notifications
// (requests without an id) produce no output line. The caller owns
// the backend connection and releases it when Run returns.
func (s *Session) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		resp := s.engine.ExchangeLine(ctx, line)
		if resp == nil {
			continue
		}
		if err := s.writeResponse(resp); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stdio: read request line: %w", err)
	}
	s.logger.Debug("stdio session ended")
	return nil
}

func (s *Session) writeResponse(resp *rpc.Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("stdio: encode response: %w", err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.out.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("stdio: write response line: %w", err)
	}
	return nil
}
