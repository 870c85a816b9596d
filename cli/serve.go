package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	otelapi "go.opentelemetry.io/otel"

	"github.com/rationsmart/rationsmart/probe"
	rsotel "github.com/rationsmart/rationsmart/otel"
	"github.com/rationsmart/rationsmart/server"
	"github.com/rationsmart/rationsmart/tool"
)

// NewServeCmd creates the "serve" subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway HTTP server",
		RunE:  runServe,
	}

	addGatewayFlags(cmd)
	cmd.Flags().IntP("port", "p", 0, "Listen port (overrides config)")
	cmd.Flags().String("host", "", "Listen host (overrides config)")
	cmd.Flags().String("cors-origin", "", "Allowed CORS origin (overrides config)")
	cmd.Flags().Duration("read-timeout", 0, "HTTP read timeout (overrides config)")
	cmd.Flags().Duration("write-timeout", 0, "HTTP write timeout (overrides config)")
	cmd.Flags().Int64("max-body", 0, "Max request body size in bytes (overrides config)")
	cmd.Flags().String("probe-schedule", "", "Backend probe cron schedule (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		cfg.Server.Port = v
	}
	if v, _ := cmd.Flags().GetString("host"); v != "" {
		cfg.Server.Host = v
	}
	if v, _ := cmd.Flags().GetString("cors-origin"); v != "" {
		cfg.Server.CORSOrigin = v
	}
	if v, _ := cmd.Flags().GetDuration("read-timeout"); v > 0 {
		cfg.Server.ReadTimeout = v
	}
	if v, _ := cmd.Flags().GetDuration("write-timeout"); v > 0 {
		cfg.Server.WriteTimeout = v
	}
	if v, _ := cmd.Flags().GetInt64("max-body"); v > 0 {
		cfg.Server.MaxBody = v
	}
	if v, _ := cmd.Flags().GetString("probe-schedule"); v != "" {
		cfg.Probe.Schedule = v
	}

	logger := newLogger(cmd)

	if cfg.Otel.Enabled {
		shutdownTracing, err := rsotel.SetupTracing(cmd.Context(), "rationsmart-gateway")
		if err != nil {
			return exitError(exitRuntime, "initializing tracing: %v", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(shutdownCtx)
		}()
	}

	client, engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	toolObserver, err := rsotel.NewToolObserver(
		otelapi.GetMeterProvider().Meter("rationsmart/tool"),
		otelapi.GetTracerProvider().Tracer("rationsmart/tool"),
	)
	if err != nil {
		return exitError(exitRuntime, "initializing tool observability: %v", err)
	}
	tool.SetObserver(toolObserver)
	defer tool.SetObserver(nil)

	prober, err := probe.New(probe.Config{
		Checker:  client,
		Schedule: cfg.Probe.Schedule,
		Logger:   logger,
	})
	if err != nil {
		return exitError(exitValidation, "%v", err)
	}
	if err := prober.Start(cmd.Context()); err != nil {
		return exitError(exitRuntime, "starting backend probe: %v", err)
	}
	defer prober.Stop()

	gateway := server.NewServer(server.ServerConfig{
		Engine:     engine,
		Prober:     prober,
		CORSOrigin: cfg.Server.CORSOrigin,
		MaxBody:    cfg.Server.MaxBody,
		Logger:     logger,
	})

	addr := net.JoinHostPort(cfg.Server.Host, fmt.Sprintf("%d", cfg.Server.Port))
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      gateway.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Signal handling
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.OutOrStdout(), "RationSmart gateway listening on %s\n", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(cmd.OutOrStdout(), "Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return exitError(exitRuntime, "shutdown error: %v", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return exitError(exitRuntime, "server error: %v", err)
		}
		return nil
	}
}
