package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rationsmart/rationsmart/tool"
)

// NewToolsCmd creates the "tools" command group.
func NewToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect and invoke gateway tools",
	}

	cmd.AddCommand(newToolsListCmd())
	cmd.AddCommand(newToolsSchemaCmd())
	cmd.AddCommand(newToolsCallCmd())

	return cmd
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tool catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALIAS\tTITLE")
			for _, d := range tool.Catalog() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, strings.Join(d.Aliases, ","), d.Title)
			}
			return w.Flush()
		},
	}
}

func newToolsSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <name>",
		Short: "Print a tool's input schema as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := tool.NewRegistry(tool.Catalog())
			if err != nil {
				return exitError(exitRuntime, "building registry: %v", err)
			}
			descriptor, ok := registry.Resolve(args[0])
			if !ok {
				return exitError(exitValidation, "unknown tool: %s", args[0])
			}
			data, err := json.MarshalIndent(descriptor.InputSchema(), "", "  ")
			if err != nil {
				return exitError(exitRuntime, "encoding schema: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newToolsCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <name>",
		Short: "Invoke a tool against the backend",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolsCall,
	}
	addGatewayFlags(cmd)
	cmd.Flags().StringArray("arg", nil, "Tool argument KEY=VALUE (repeatable)")
	cmd.Flags().String("json", "", "Tool arguments as a JSON object (overrides --arg)")
	return cmd
}

func runToolsCall(cmd *cobra.Command, args []string) error {
	arguments, err := resolveCallArguments(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)
	client, engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	text := engine.Dispatcher().Dispatch(cmd.Context(), args[0], arguments)
	fmt.Fprintln(cmd.OutOrStdout(), text)
	if tool.IsErrorText(text) {
		return exitError(exitRuntime, "tool returned an error")
	}
	return nil
}

func resolveCallArguments(cmd *cobra.Command) (tool.Arguments, error) {
	if raw, _ := cmd.Flags().GetString("json"); raw != "" {
		var arguments tool.Arguments
		if err := json.Unmarshal([]byte(raw), &arguments); err != nil {
			return nil, exitError(exitInputParse, "invalid --json value: %v", err)
		}
		return arguments, nil
	}

	pairs, _ := cmd.Flags().GetStringArray("arg")
	arguments := make(tool.Arguments, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, exitError(exitInputParse, "invalid --arg %q, want KEY=VALUE", pair)
		}
		arguments[key] = coerceArgValue(value)
	}
	return arguments, nil
}

// coerceArgValue sniffs booleans and numbers from flag values so
// typed arguments round-trip the way JSON callers send them.
func coerceArgValue(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	return value
}
