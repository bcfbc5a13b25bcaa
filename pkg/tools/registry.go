// Package tools exposes the toolkit operations as named agent tools. Each
// tool has a JSON schema describing its arguments and a handler that
// decodes free-form arguments and calls the matching toolkit function.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/iancoleman/strcase"
	"github.com/invopop/jsonschema"
	"github.com/mitchellh/mapstructure"

	"github.com/hashicorp-forge/boxkit/pkg/box"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

// ErrToolNotFound is returned by Call for names that are not registered.
var ErrToolNotFound = errors.New("tool not found")

// Handler runs a tool with decoded JSON arguments.
type Handler func(ctx context.Context, client *box.Client, args map[string]any) (map[string]any, error)

// Tool is a callable toolkit operation.
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Handler     Handler
}

// Registry holds tools by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds tools. Registering a name twice is an error.
func (r *Registry) Register(tools ...*Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range tools {
		if t.Name == "" || t.Handler == nil {
			return fmt.Errorf("tool %q is incomplete", t.Name)
		}
		if _, exists := r.tools[t.Name]; exists {
			return fmt.Errorf("tool %q already registered", t.Name)
		}
		r.tools[t.Name] = t
	}
	return nil
}

// Get returns the named tool.
func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// List returns every tool sorted by name.
func (r *Registry) List() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call runs the named tool.
func (r *Registry) Call(
	ctx context.Context, client *box.Client, name string, args map[string]any,
) (map[string]any, error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return t.Handler(ctx, client, args)
}

// CallResult folds an error into the result map the way agent frameworks
// expect tool output: {"error": message}.
func CallResult(result map[string]any, err error) map[string]any {
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}

// define builds a tool from a toolkit operation taking an args struct A.
// The tool name is the snake_case form of op.
func define[A any](
	op, description string, fn func(ctx context.Context, client *box.Client, args A) (map[string]any, error),
) *Tool {
	name := strcase.ToSnake(op)
	return &Tool{
		Name:        name,
		Description: description,
		InputSchema: reflectSchema(new(A)),
		Handler: func(ctx context.Context, client *box.Client, raw map[string]any) (map[string]any, error) {
			var args A
			if err := decodeArgs(raw, &args); err != nil {
				return nil, &toolkit.Error{Op: op, Err: toolkit.ErrInvalidArgument, Msg: err.Error()}
			}
			return fn(ctx, client, args)
		},
	}
}

func reflectSchema(v any) *jsonschema.Schema {
	r := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	s := r.Reflect(v)
	s.Version = ""
	s.ID = ""
	return s
}

// decodeArgs fills args from JSON-ish input. Unknown keys are rejected so
// a misspelled argument is not silently dropped.
func decodeArgs(raw map[string]any, args any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Squash:           true,
		Result:           args,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
