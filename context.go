package statetree

import "sync"

// Expr is a completion-data expression, evaluated against the extended state
// and the event that triggered the step. Final nodes may carry one as their
// completion data.
type Expr func(ctx *Context, event Event) any

// Context provides thread-safe storage for extended state.
// Completion-data expressions read from it via DoneData.
type Context struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{
		data: make(map[string]any),
	}
}

// Get retrieves a value by key. Returns nil if the key does not exist.
func (c *Context) Get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key]
}

// Set stores a value by key.
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

// Delete removes a key from the context.
func (c *Context) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// GetAll returns a snapshot copy of all data for serialization.
// The returned map is a defensive copy and modifications will not affect the context.
func (c *Context) GetAll() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make(map[string]any, len(c.data))
	for k, v := range c.data {
		snapshot[k] = v
	}
	return snapshot
}

// LoadAll atomically replaces all data in the context.
// This is useful for deserialization.
func (c *Context) LoadAll(data map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
}

// evalExpr applies the context-mapping rule for completion data: an Expr is
// evaluated, any other value passes through as-is.
func evalExpr(expr any, ctx *Context, event Event) any {
	if fn, ok := expr.(Expr); ok {
		return fn(ctx, event)
	}
	return expr
}
