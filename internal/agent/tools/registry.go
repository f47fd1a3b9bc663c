// Package tools exposes the retriever to the completion engine as callable
// tools.
//
// Tools are declared in an explicit registry: a mapping from tool name to
// input schema and handler, validated at startup. Every tool is a pure
// read-only call into the retriever and returns a serialized JSON payload,
// never prose.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// Sentinel errors for tool operations.
var (
	// ErrInvalidTool indicates an invalid registration (empty name, nil
	// handler or schema, duplicate name). Raised at startup, never at
	// dispatch time.
	ErrInvalidTool = errors.New("invalid tool registration")

	// ErrUnknownTool is returned when the completion engine requests a tool
	// that was never registered.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrToolFailed wraps handler failures so the orchestrator can report
	// them to the model without crashing the turn.
	ErrToolFailed = errors.New("tool dispatch failed")
)

// Handler executes a tool call. Arguments arrive as the raw JSON the model
// produced; the return value is the serialized payload handed back to it.
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Tool pairs a function declaration with its handler.
type Tool struct {
	Definition llms.FunctionDefinition
	Handler    Handler
}

// Registry maps tool names to definitions and handlers.
//
// Registration happens once at startup; dispatch is read-only and safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool, validating the registration.
func (r *Registry) Register(t Tool) error {
	if t.Definition.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidTool)
	}
	if t.Handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrInvalidTool, t.Definition.Name)
	}
	if t.Definition.Parameters == nil {
		return fmt.Errorf("%w: %s has no input schema", ErrInvalidTool, t.Definition.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Definition.Name]; exists {
		return fmt.Errorf("%w: %s already registered", ErrInvalidTool, t.Definition.Name)
	}
	r.tools[t.Definition.Name] = t
	r.order = append(r.order, t.Definition.Name)
	return nil
}

// Definitions returns the tool declarations in registration order, in the
// shape the completion engine expects.
func (r *Registry) Definitions() []llms.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]llms.Tool, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		def := t.Definition
		out = append(out, llms.Tool{Type: "function", Function: &def})
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Dispatch runs the named tool with the given raw arguments.
func (r *Registry) Dispatch(ctx context.Context, name string, args string) (string, error) {
	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	payload, err := t.Handler(ctx, json.RawMessage(args))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrToolFailed, name, err)
	}
	return payload, nil
}
