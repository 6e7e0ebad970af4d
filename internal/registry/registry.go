package registry

import (
	"errors"
	"fmt"
	"sync"
)

// #region errors

// ErrUnknownHandler is returned when a handler id was never registered.
// This is a configuration defect, not a "handler is unprotected" outcome.
var ErrUnknownHandler = errors.New("handler not registered")

// #endregion errors

// #region handler-info

// HandlerInfo is the static protection metadata for one action handler.
// Built once, never mutated afterwards.
type HandlerInfo struct {
	ID        string
	Protected bool
	Fields    []string // field names to inspect, in declared order
}

// #endregion handler-info

// #region registry-struct

// Registry maps handler ids to protection metadata. All handlers are
// registered at startup; lookups after that are read-only and safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerInfo
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]HandlerInfo)}
}

// #endregion registry-struct

// #region register

// Register records a handler without protection metadata.
func (r *Registry) Register(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[id]; ok {
		return
	}
	r.handlers[id] = HandlerInfo{ID: id}
}

// Protect records a handler whose named fields must be inspected before the
// handler runs. Field order is preserved. Re-registering the same id keeps
// the first declaration.
func (r *Registry) Protect(id string, fields ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[id]; ok {
		return
	}
	cp := make([]string, len(fields))
	copy(cp, fields)
	r.handlers[id] = HandlerInfo{ID: id, Protected: len(cp) > 0, Fields: cp}
}

// #endregion register

// #region lookup

// Lookup returns the metadata for a handler id. A handler that was
// registered without protection metadata yields Protected=false and no
// fields; an id that was never registered yields ErrUnknownHandler.
func (r *Registry) Lookup(id string) (HandlerInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.handlers[id]
	if !ok {
		return HandlerInfo{}, fmt.Errorf("lookup %q: %w", id, ErrUnknownHandler)
	}
	return info, nil
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// #endregion lookup
