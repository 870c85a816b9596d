package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rationsmart/rationsmart/backend"
	"github.com/rationsmart/rationsmart/config"
	"github.com/rationsmart/rationsmart/rpc"
	"github.com/rationsmart/rationsmart/tool"
)

// addGatewayFlags registers the connection flags shared by every
// command that talks to the backend.
func addGatewayFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to rationsmart.yaml")
	cmd.Flags().String("backend-url", "", "Backend base URL (overrides config)")
	cmd.Flags().String("api-key", "", "Backend API key (overrides config)")
	cmd.Flags().Duration("timeout", 0, "Backend call timeout (overrides config)")
}

// loadConfig resolves the effective configuration: discovered file,
// environment overrides, then command flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	explicitPath, _ := cmd.Flags().GetString("config")

	cfg := config.Default()
	path, found, err := config.Discover(explicitPath)
	if err != nil {
		return config.Config{}, exitError(exitValidation, "%v", err)
	}
	if found {
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, exitError(exitValidation, "%v", err)
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return config.Config{}, exitError(exitValidation, "%v", err)
	}

	if v, _ := cmd.Flags().GetString("backend-url"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("api-key"); v != "" {
		cfg.Backend.APIKey = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Backend.Timeout = v
	}
	return cfg, nil
}

// newEngine builds the backend client, dispatcher, and rpc engine for
// one command invocation. The caller closes the returned client when
// the command finishes.
func newEngine(cfg config.Config, logger *slog.Logger) (*backend.Client, *rpc.Engine, error) {
	client := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		APIKey:  cfg.Backend.APIKey,
		Timeout: cfg.Backend.Timeout,
	})
	dispatcher, err := tool.NewDispatcher(tool.DispatcherConfig{
		Client: client,
		Logger: logger,
	})
	if err != nil {
		client.Close()
		return nil, nil, exitError(exitRuntime, "building tool dispatcher: %v", err)
	}
	return client, rpc.NewEngine(dispatcher, logger), nil
}

// newLogger builds the process logger honoring the root verbosity
// flags. Logs go to stderr so stdout stays clean for protocol and
// command output.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
