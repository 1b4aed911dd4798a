// Package toolreg is the capability registry for research helper tools.
// The planning core never depends on it; tools are peers invoked by the
// surrounding application.
package toolreg

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnknownTool = errors.New("unknown tool")

// Params is the free-form invocation input for a tool.
type Params map[string]string

// Result is a tool's output: a short human-readable summary plus
// structured fields the caller may render.
type Result struct {
	Summary string
	Fields  map[string]string
}

// Tool is one registered research capability.
type Tool interface {
	Name() string
	Description() string
	Invoke(ctx context.Context, params Params) (*Result, error)
}

// Registry maps tool names to implementations. Registration happens at
// wiring time; lookups are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds a tool, replacing any previous tool of the same name.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	r.tools[t.Name()] = t
	r.mu.Unlock()
}

// Names lists the registered tool names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks a tool up by name.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t, nil
}

// Invoke dispatches to the named tool.
func (r *Registry) Invoke(ctx context.Context, name string, params Params) (*Result, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return t.Invoke(ctx, params)
}
