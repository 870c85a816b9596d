// Package probe runs a scheduled reachability check against the
// RationSmart backend and keeps the latest observation for the status
// endpoint. The observation is operational telemetry only; no domain
// state lives here.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rationsmart/rationsmart/backend"
	"github.com/rationsmart/rationsmart/tool"
)

// DefaultSchedule checks the backend every five minutes.
const DefaultSchedule = "*/5 * * * *"

// Backend state reported by a snapshot.
const (
	StateUnknown     = "unknown"
	StateOK          = "ok"
	StateUnreachable = "unreachable"
)

// Checker is the slice of the backend client the probe exercises. The
// country listing doubles as the reachability call: it is cheap,
// read-only, and goes through the same credentialed path as real
// traffic.
type Checker interface {
	Countries(ctx context.Context) ([]backend.Country, error)
}

// Snapshot is the latest probe observation, served on GET /status.
type Snapshot struct {
	Backend   string     `json:"backend"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
	LatencyMS *int64     `json:"latency_ms,omitempty"`
}

// Config configures a Prober. Checker is required; an empty Schedule
// falls back to DefaultSchedule and a nil Logger to slog.Default().
type Config struct {
	Checker  Checker
	Schedule string
	Logger   *slog.Logger
}

// Prober owns the probe loop and the current snapshot. Safe for
// concurrent use.
type Prober struct {
	checker  Checker
	schedule cron.Schedule
	logger   *slog.Logger

	mu        sync.RWMutex
	snapshot  Snapshot
	stopCh    chan struct{}
	stoppedCh chan struct{}
	started   bool
}

// New creates a prober; the schedule expression is validated here so a
// bad config fails at startup, not at the first tick.
func New(cfg Config) (*Prober, error) {
	if cfg.Checker == nil {
		return nil, fmt.Errorf("probe: checker is required")
	}
	expr := cfg.Schedule
	if expr == "" {
		expr = DefaultSchedule
	}
	schedule, err := parseCronExpressionUTC(expr)
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		checker:  cfg.Checker,
		schedule: schedule,
		logger:   logger,
		snapshot: Snapshot{Backend: StateUnknown},
	}, nil
}

// Start runs an immediate check and then follows the schedule until
// Stop is called or ctx ends.
func (p *Prober) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return errors.New("probe: already started")
	}
	p.started = true
	p.stopCh = make(chan struct{})
	p.stoppedCh = make(chan struct{})
	p.mu.Unlock()

	p.Check(ctx)
	go p.loop(ctx)
	return nil
}

// Stop halts the probe loop and waits for it to exit.
func (p *Prober) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	close(p.stopCh)
	stopped := p.stoppedCh
	p.mu.Unlock()
	<-stopped
}

func (p *Prober) loop(ctx context.Context) {
	defer close(p.stoppedCh)
	for {
		next := p.schedule.Next(time.Now().UTC())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-p.stopCh:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			p.Check(ctx)
		}
	}
}

// Check runs one reachability check and records the outcome.
func (p *Prober) Check(ctx context.Context) {
	start := time.Now()
	_, err := p.checker.Countries(ctx)
	latency := time.Since(start).Milliseconds()
	checkedAt := time.Now().UTC()

	state := StateOK
	statusCode := 0
	if err != nil {
		state = StateUnreachable
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			statusCode = apiErr.StatusCode
		}
		p.logger.Warn("backend probe failed", "error", err, "latency_ms", latency)
	} else {
		p.logger.Debug("backend probe ok", "latency_ms", latency)
	}

	p.mu.Lock()
	p.snapshot = Snapshot{Backend: state, CheckedAt: &checkedAt, LatencyMS: &latency}
	p.mu.Unlock()

	tool.EmitProbeObservation(tool.ProbeObservation{
		Healthy:    err == nil,
		StatusCode: statusCode,
		DurationMS: latency,
	})
}

// Snapshot returns the latest observation.
func (p *Prober) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}
