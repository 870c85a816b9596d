package tool

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rationsmart/rationsmart/backend"
	"github.com/rationsmart/rationsmart/country"
)

// Handler executes one tool call and returns the user-facing text.
type Handler func(ctx context.Context, args Arguments) (string, error)

// Dispatcher routes tool calls to their handlers. It owns the backend
// client and country resolver shared by every handler; construct one
// per process and share it across transports.
type Dispatcher struct {
	registry *Registry
	client   *backend.Client
	resolver *country.Resolver
	logger   *slog.Logger
	handlers map[string]Handler
}

// DispatcherConfig configures NewDispatcher. Client is required; a
// nil Logger falls back to slog.Default().
type DispatcherConfig struct {
	Client *backend.Client
	Logger *slog.Logger
}

// NewDispatcher builds the registry from the default catalog and wires
// a handler for every descriptor.
func NewDispatcher(cfg DispatcherConfig) (*Dispatcher, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("tool: dispatcher requires a backend client")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry, err := NewRegistry(Catalog())
	if err != nil {
		return nil, err
	}
	d := &Dispatcher{
		registry: registry,
		client:   cfg.Client,
		resolver: country.NewResolver(cfg.Client, logger),
		logger:   logger,
	}
	d.handlers = map[string]Handler{
		"rationsmart.countries.list":     d.listCountries,
		"rationsmart.breeds.list":        d.listBreeds,
		"rationsmart.location.resolve":   d.resolveLocation,
		"rationsmart.countries.resolve":  d.resolveCountry,
		"rationsmart.cows.create":        d.createCow,
		"rationsmart.cows.list":          d.listCows,
		"rationsmart.cows.get":           d.getCow,
		"rationsmart.cows.update":        d.updateCow,
		"rationsmart.cows.delete":        d.deleteCow,
		"rationsmart.diets.generate":     d.generateDiet,
		"rationsmart.diets.schedule.get": d.getSchedule,
		"rationsmart.diets.history.list": d.listHistory,
		"rationsmart.diets.follow":       d.followDiet,
		"rationsmart.diets.unfollow":     d.unfollowDiet,
	}
	for _, desc := range registry.Descriptors() {
		if _, ok := d.handlers[desc.Name]; !ok {
			return nil, fmt.Errorf("tool: no handler for %q", desc.Name)
		}
	}
	return d, nil
}

// Registry exposes the catalog for listings.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch resolves name through the alias table, validates required
// arguments, and runs the handler. The returned text is always
// user-facing; handler failures are logged and rendered as
// "Error: ..." rather than propagated.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args Arguments) string {
	start := time.Now()
	text := d.run(ctx, name, args)
	canonical := name
	if desc, ok := d.registry.Resolve(name); ok {
		canonical = desc.Name
	}
	emitDispatchObservation(DispatchObservation{
		Tool:       canonical,
		Called:     name,
		DurationMS: time.Since(start).Milliseconds(),
		IsError:    IsErrorText(text),
	})
	return text
}

func (d *Dispatcher) run(ctx context.Context, name string, args Arguments) string {
	desc, ok := d.registry.Resolve(name)
	if !ok {
		return fmt.Sprintf("Unknown tool: %s", name)
	}
	if msg := missingRequired(desc, args); msg != "" {
		return msg
	}
	text, err := d.handlers[desc.Name](ctx, args)
	if err != nil {
		d.logger.Error("tool failed", "tool", desc.Name, "error", err)
		return fmt.Sprintf("Error: %v", err)
	}
	return text
}
