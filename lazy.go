package hangar

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Lazy is a value produced on demand. Lazy values placed in "params" or
// setter arguments are evaluated when the arguments are bound.
type Lazy interface {
	Resolve(ctx context.Context) (any, error)
}

// LazyFunc adapts a function to Lazy.
type LazyFunc func(ctx context.Context) (any, error)

// Resolve implements Lazy.
func (f LazyFunc) Resolve(ctx context.Context) (any, error) {
	return f(ctx)
}

// Reference defers the resolution of a dependency until it is needed,
// typically as the argument of another dependency.
type Reference struct {
	container *Container
	name      string
	opts      Options
}

// Load returns a Reference to name resolved with opts. Nothing is resolved
// until the reference is.
//
//	c.Add("repo", hangar.NewClassConfig("Repo", "app/repo").
//	    Param("db", c.Load("db", nil)).
//	    Definition())
func (c *Container) Load(name string, opts Options) *Reference {
	return &Reference{container: c, name: name, opts: opts.Clone()}
}

// Resolve implements Lazy.
func (r *Reference) Resolve(ctx context.Context) (any, error) {
	return r.container.GetContext(ctx, r.name, r.opts.Clone())
}

// Get resolves the reference outside of any resolution chain.
func (r *Reference) Get() (any, error) {
	return r.Resolve(context.Background())
}

// Name returns the referenced dependency name.
func (r *Reference) Name() string {
	return r.name
}

// Options returns a copy of the options the reference resolves with.
func (r *Reference) Options() Options {
	return r.opts.Clone()
}

// LazyOf holds a typed dependency that is resolved at most once, on first access.
type LazyOf[T any] struct {
	container *Container
	name      string
	opts      Options
	mu        sync.Once
	value     T
	err       error
	resolved  atomic.Bool
}

// NewLazy defers resolving name until the first Get.
func NewLazy[T any](c *Container, name string, opts Options) *LazyOf[T] {
	return &LazyOf[T]{
		container: c,
		name:      name,
		opts:      opts.Clone(),
	}
}

// Get resolves name on first use.
// Later calls return the first outcome, error included.
func (l *LazyOf[T]) Get() (T, error) {
	l.mu.Do(func() {
		instance, err := l.container.Get(l.name, l.opts.Clone())
		if err != nil {
			l.err = err

			return
		}

		typed, ok := instance.(T)
		if !ok {
			l.err = ErrTypeMismatch(l.name, instance)

			return
		}

		l.value = typed
		l.resolved.Store(true)
	})

	return l.value, l.err
}

// MustGet is Get that panics on failure.
func (l *LazyOf[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", l.name, err))
	}

	return value
}

// IsResolved reports whether Get has produced the value. It is safe to call
// while another goroutine is resolving.
func (l *LazyOf[T]) IsResolved() bool {
	return l.resolved.Load()
}

// Name is the dependency name.
func (l *LazyOf[T]) Name() string {
	return l.name
}

// Provider resolves a dependency on every access. Whether a new instance is
// built depends on the definition: fresh configurations and callbacks build
// each time, everything else returns the cached instance.
type Provider[T any] struct {
	container *Container
	name      string
}

// NewProvider creates a new provider for name.
func NewProvider[T any](c *Container, name string) *Provider[T] {
	return &Provider[T]{
		container: c,
		name:      name,
	}
}

// Provide resolves and returns the dependency.
func (p *Provider[T]) Provide(opts Options) (T, error) {
	return ResolveWith[T](p.container, p.name, opts)
}

// MustProvide resolves and returns the dependency, panicking on error.
func (p *Provider[T]) MustProvide(opts Options) T {
	value, err := p.Provide(opts)
	if err != nil {
		panic(fmt.Sprintf("provider %s failed: %v", p.name, err))
	}

	return value
}

// Name is the dependency name.
func (p *Provider[T]) Name() string {
	return p.name
}
