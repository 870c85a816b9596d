package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/rationsmart/rationsmart/stdio"
)

// NewStdioCmd creates the "stdio" subcommand: the line-delimited
// JSON-RPC session over the process stdin/stdout.
func NewStdioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Serve the line-delimited RPC session on stdin/stdout",
		RunE:  runStdio,
	}
	addGatewayFlags(cmd)
	return cmd
}

func runStdio(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	client, engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	// The session holds the backend connection for its lifetime and
	// releases it when the stream ends.
	defer client.Close()

	session, err := stdio.NewSession(stdio.Config{
		Engine: engine,
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Logger: logger,
	})
	if err != nil {
		return exitError(exitRuntime, "%v", err)
	}
	if err := session.Run(cmd.Context()); err != nil && !errors.Is(err, io.EOF) {
		return exitError(exitRuntime, "stdio session: %v", err)
	}
	return nil
}
