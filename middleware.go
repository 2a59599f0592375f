package hangar

import "context"

// Middleware intercepts resolutions made through Get, GetContext and
// nested References alike.
type Middleware interface {
	// BeforeResolve runs before (scope, name) is resolved. A non-nil error
	// aborts the resolution and is returned to the caller.
	BeforeResolve(ctx context.Context, scope, name string) error

	// AfterResolve runs once the resolution finished, successfully or not.
	// A non-nil error replaces the result.
	AfterResolve(ctx context.Context, scope, name string, instance any, err error) error
}

type middlewareChain struct {
	hooks []Middleware
}

func newMiddlewareChain() *middlewareChain {
	return &middlewareChain{}
}

func (m *middlewareChain) add(mw Middleware) {
	m.hooks = append(m.hooks, mw)
}

// clone snapshots the chain so it can run without the container lock.
func (m *middlewareChain) clone() *middlewareChain {
	return &middlewareChain{hooks: append([]Middleware(nil), m.hooks...)}
}

func (m *middlewareChain) beforeResolve(ctx context.Context, scope, name string) error {
	for _, mw := range m.hooks {
		if err := mw.BeforeResolve(ctx, scope, name); err != nil {
			return err
		}
	}
	return nil
}

func (m *middlewareChain) afterResolve(ctx context.Context, scope, name string, instance any, err error) error {
	for _, mw := range m.hooks {
		if hookErr := mw.AfterResolve(ctx, scope, name, instance, err); hookErr != nil {
			return hookErr
		}
	}
	return nil
}

// Use appends mw to the chain. Hooks run in the order they were added.
func (c *Container) Use(mw Middleware) {
	if mw == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.middleware.add(mw)
}

// FuncMiddleware adapts plain functions to Middleware. Nil functions are skipped.
type FuncMiddleware struct {
	BeforeResolveFunc func(ctx context.Context, scope, name string) error
	AfterResolveFunc  func(ctx context.Context, scope, name string, instance any, err error) error
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(ctx context.Context, scope, name string) error {
	if f.BeforeResolveFunc == nil {
		return nil
	}
	return f.BeforeResolveFunc(ctx, scope, name)
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(ctx context.Context, scope, name string, instance any, err error) error {
	if f.AfterResolveFunc == nil {
		return nil
	}
	return f.AfterResolveFunc(ctx, scope, name, instance, err)
}
