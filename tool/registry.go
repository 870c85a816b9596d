package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Registry is the ordered tool catalog plus the alias table. Every
// alias resolves to exactly one descriptor; canonical names resolve to
// themselves.
type Registry struct {
	descriptors []Descriptor
	index       map[string]int
	aliases     map[string]string
}

// NewRegistry builds a registry from descriptors. It rejects duplicate
// names and aliases and compiles every input schema, so a malformed
// catalog fails at construction instead of at first call.
func NewRegistry(descriptors []Descriptor) (*Registry, error) {
	r := &Registry{
		descriptors: descriptors,
		index:       make(map[string]int, len(descriptors)),
		aliases:     make(map[string]string),
	}
	compiler := jsonschema.NewCompiler()
	for i, d := range descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("tool: descriptor %d has no name", i)
		}
		if _, dup := r.index[d.Name]; dup {
			return nil, fmt.Errorf("tool: duplicate tool name %q", d.Name)
		}
		r.index[d.Name] = i
		if err := r.addAlias(d.Name, d.Name); err != nil {
			return nil, err
		}
		for _, alias := range d.Aliases {
			if err := r.addAlias(alias, d.Name); err != nil {
				return nil, err
			}
		}
		if err := compileSchema(compiler, d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) addAlias(alias, canonical string) error {
	if existing, ok := r.aliases[alias]; ok {
		return fmt.Errorf("tool: alias %q maps to both %q and %q", alias, existing, canonical)
	}
	r.aliases[alias] = canonical
	return nil
}

func compileSchema(compiler *jsonschema.Compiler, d Descriptor) error {
	data, err := json.Marshal(d.InputSchema())
	if err != nil {
		return fmt.Errorf("tool: encode %s input schema: %w", d.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("tool: decode %s input schema: %w", d.Name, err)
	}
	resource := d.Name + ".json"
	if err := compiler.AddResource(resource, doc); err != nil {
		return fmt.Errorf("tool: register %s input schema: %w", d.Name, err)
	}
	if _, err := compiler.Compile(resource); err != nil {
		return fmt.Errorf("tool: compile %s input schema: %w", d.Name, err)
	}
	return nil
}

// Resolve maps a tool name or alias to its descriptor.
func (r *Registry) Resolve(name string) (Descriptor, bool) {
	canonical, ok := r.aliases[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[r.index[canonical]], true
}

// Descriptors returns the catalog in registration order.
func (r *Registry) Descriptors() []Descriptor {
	return r.descriptors
}

// missingRequired checks the declared required arguments against args.
// A required string must be present, non-null, and non-empty; a
// required number only has to be present and non-null, so zero
// coordinates stay valid. When anything is missing the error text
// names every required argument of the tool, not just the absent ones.
func missingRequired(d Descriptor, args Arguments) string {
	for _, a := range d.Args {
		if !a.Required {
			continue
		}
		if !argPresent(a, args) {
			return requiredMessage(d.requiredNames())
		}
	}
	return ""
}

func argPresent(a Arg, args Arguments) bool {
	if !args.Has(a.Name) {
		return false
	}
	if a.Type == ArgString {
		return args.String(a.Name) != ""
	}
	return true
}

func requiredMessage(names []string) string {
	if len(names) == 1 {
		return fmt.Sprintf("Error: %s is required", names[0])
	}
	head := strings.Join(names[:len(names)-1], ", ")
	return fmt.Sprintf("Error: %s and %s are required", head, names[len(names)-1])
}
