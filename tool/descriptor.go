// Package tool holds the gateway's tool catalog and the dispatcher
// that executes calls against the RationSmart backend. Every transport
// front end funnels into the same Dispatcher, so a tool behaves
// identically no matter how it was invoked.
package tool

import "strings"

// ArgType is the declared JSON Schema type of a tool argument.
type ArgType string

const (
	ArgString  ArgType = "string"
	ArgNumber  ArgType = "number"
	ArgInteger ArgType = "integer"
	ArgBoolean ArgType = "boolean"
)

// Arg describes one input argument of a tool.
type Arg struct {
	Name        string
	Type        ArgType
	Description string
	Default     any
	Required    bool
}

// Descriptor describes one tool: its canonical dotted name, the legacy
// flat aliases that map onto it, documentation, and the input schema.
// Descriptors are immutable once registered.
type Descriptor struct {
	Name        string
	Title       string
	Description string
	Aliases     []string
	Args        []Arg
}

// InputSchema renders the argument list as a JSON Schema object in the
// shape tool listings expose.
func (d Descriptor) InputSchema() map[string]any {
	props := make(map[string]any, len(d.Args))
	required := make([]string, 0)
	for _, a := range d.Args {
		prop := map[string]any{"type": string(a.Type)}
		if a.Description != "" {
			prop["description"] = a.Description
		}
		if a.Default != nil {
			prop["default"] = a.Default
		}
		props[a.Name] = prop
		if a.Required {
			required = append(required, a.Name)
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// requiredNames returns the names of required arguments in declaration
// order.
func (d Descriptor) requiredNames() []string {
	var names []string
	for _, a := range d.Args {
		if a.Required {
			names = append(names, a.Name)
		}
	}
	return names
}

// IsErrorText reports whether a dispatch result represents a failure.
// A result is a failure iff its text begins, case-insensitively, with
// "error:".
func IsErrorText(text string) bool {
	return strings.HasPrefix(strings.ToLower(text), "error:")
}
