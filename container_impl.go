package hangar

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/xraph/go-utils/errs"
	"go.uber.org/zap"
)

// Container holds registrations, materialized entries, cached instances and
// observer rules, each partitioned by scope.
type Container struct {
	scope        string
	locked       map[string]bool
	registry     map[string]map[string]Definition
	entries      map[string]map[string]*entry
	instances    map[string]map[string]any
	observers    map[string]map[string]Options
	loader       ClassLoader
	loaded       map[classRef]bool
	logger       *zap.Logger
	middleware   *middlewareChain
	detectCycles bool
	mu           sync.RWMutex
}

// entry is a definition materialized on first resolution. Its kind never
// changes. Re-registering the name marks it stale and the next resolution
// refreshes its definition in place.
type entry struct {
	id    string
	kind  Kind
	def   Definition
	stale bool
}

// classRef names a class together with the path it is loaded from.
type classRef struct {
	className string
	classPath string
}

// entryView is the effective entry seen from one scope: the scope's own entry
// layered over the global one.
type entryView struct {
	kind     Kind
	object   any
	factory  Factory
	data     Options
	instance any
	cached   bool
}

func newContainer(opts ...Option) *Container {
	c := &Container{
		scope:        DefaultScope,
		locked:       make(map[string]bool),
		registry:     map[string]map[string]Definition{GlobalScope: {}, DefaultScope: {}},
		entries:      map[string]map[string]*entry{GlobalScope: {}, DefaultScope: {}},
		instances:    map[string]map[string]any{GlobalScope: {}, DefaultScope: {}},
		observers:    map[string]map[string]Options{GlobalScope: {}, DefaultScope: {}},
		loader:       NewCatalog(),
		loaded:       make(map[classRef]bool),
		logger:       zap.NewNop(),
		middleware:   newMiddlewareChain(),
		detectCycles: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// bucket returns the scope's map, creating it. Callers hold the write lock.
func bucket[V any](m map[string]map[string]V, scope string) map[string]V {
	b, ok := m[scope]
	if !ok {
		b = make(map[string]V)
		m[scope] = b
	}
	return b
}

// Get resolves name. The "scope" option selects the scope, otherwise the
// ambient scope applies. Any other option customizes this one resolution.
func (c *Container) Get(name string, opts Options) (any, error) {
	return c.GetContext(context.Background(), name, opts)
}

// Call resolves name with the first argument as options.
func (c *Container) Call(name string, args ...Options) (any, error) {
	var opts Options
	if len(args) > 0 {
		opts = args[0]
	}
	return c.Get(name, opts)
}

// GetContext resolves name. The context carries the resolution chain used
// for cycle detection; factories should pass it on to nested resolutions.
func (c *Container) GetContext(ctx context.Context, name string, opts Options) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	scope := c.effectiveScope(opts)

	c.mu.RLock()
	mw := c.middleware.clone()
	c.mu.RUnlock()

	if err := mw.beforeResolve(ctx, scope, name); err != nil {
		return nil, err
	}

	instance, err := c.resolve(ctx, scope, name, opts)

	if mwErr := mw.afterResolve(ctx, scope, name, instance, err); mwErr != nil {
		return nil, mwErr
	}

	return instance, err
}

func (c *Container) resolve(ctx context.Context, scope, name string, opts Options) (any, error) {
	if c.detectCycles {
		var err error
		if ctx, err = enterResolution(ctx, scope, name); err != nil {
			return nil, err
		}
	}

	view, err := c.materialize(scope, name)
	if err != nil {
		return nil, err
	}

	switch view.kind {
	case KindObject:
		return c.resolveObject(ctx, scope, name, view, opts)
	case KindCallback:
		return c.resolveCallback(ctx, scope, name, view, opts)
	case KindConfig:
		return c.resolveConfig(ctx, scope, name, view, opts)
	default:
		return nil, ErrUnknownDependencyType(name, view.kind)
	}
}

// materialize returns the effective entry for (scope, name), converting
// registered definitions into entries the first time they are touched.
// Classes are loaded without the container lock held, so a ClassLoader may
// call back into the container.
func (c *Container) materialize(scope, name string) (entryView, error) {
	for {
		c.mu.Lock()
		view, pending, err := c.materializeLocked(scope, name)
		c.mu.Unlock()
		if err != nil || pending == nil {
			return view, err
		}

		if err := c.loader.Load(pending.className, pending.classPath); err != nil {
			return entryView{}, NewDependencyError(name, "load", err)
		}

		c.mu.Lock()
		c.loaded[*pending] = true
		c.mu.Unlock()
	}
}

// materializeLocked resolves the effective view, or reports the class that
// must be loaded first. The scope's own entry wins; the global definition is
// only layered under it when both are class configurations, and is only
// materialized itself when the scope has no entry of its own.
func (c *Container) materializeLocked(scope, name string) (entryView, *classRef, error) {
	named, pending, err := c.materializeIn(scope, name)
	if err != nil || pending != nil {
		return entryView{}, pending, err
	}

	var view entryView
	switch {
	case named != nil:
		view = viewOf(named.def)
		if scope != GlobalScope && named.kind == KindConfig {
			if base, ok := c.registry[GlobalScope][name]; ok && base.kind == KindConfig {
				view.data = Merge(base.config, named.def.config)
			}
		}
	case scope != GlobalScope:
		global, pending, err := c.materializeIn(GlobalScope, name)
		if err != nil || pending != nil {
			return entryView{}, pending, err
		}
		if global == nil {
			return entryView{}, nil, ErrDependencyNotFound(name, scope)
		}
		view = viewOf(global.def)
	default:
		return entryView{}, nil, ErrDependencyNotFound(name, scope)
	}

	view.instance, view.cached = c.instances[scope][name]

	return view, nil, nil
}

// materializeIn returns the entry at (scope, name), creating it from the
// registry or refreshing it when stale. It returns nil without error when
// nothing is registered, and the class to load when a configuration names
// one the container has not loaded yet.
func (c *Container) materializeIn(scope, name string) (*entry, *classRef, error) {
	e := c.entries[scope][name]
	if e != nil && !e.stale {
		return e, nil, nil
	}
	def, ok := c.registry[scope][name]
	if !ok {
		return nil, nil, nil
	}

	if def.kind == KindConfig {
		data := def.config
		if scope != GlobalScope {
			if base, ok := c.registry[GlobalScope][name]; ok && base.kind == KindConfig {
				data = Merge(base.config, def.config)
			}
		}
		ref := classRef{className: data.String(OptClassName), classPath: data.String(OptClassPath)}
		if ref.className == "" {
			return nil, nil, ErrMissingOption(name, OptClassName)
		}
		if ref.classPath == "" {
			return nil, nil, ErrMissingOption(name, OptClassPath)
		}
		if !c.loaded[ref] {
			return nil, &ref, nil
		}
	}

	if e != nil {
		e.def = def
		e.stale = false
		return e, nil, nil
	}

	e = &entry{id: uuid.NewString(), kind: def.kind, def: def}
	bucket(c.entries, scope)[name] = e

	c.logger.Debug("dependency materialized",
		zap.String("dependency", name),
		zap.String("scope", scope),
		zap.Stringer("kind", e.kind),
		zap.String("id", e.id),
	)

	return e, nil, nil
}

func viewOf(def Definition) entryView {
	return entryView{
		kind:    def.kind,
		object:  def.object,
		factory: def.factory,
		data:    def.config,
	}
}

// resolveObject returns the registered value, invoking it first when it
// produces its instance.
func (c *Container) resolveObject(ctx context.Context, scope, name string, view entryView, opts Options) (any, error) {
	instance := view.object
	if invoker, ok := view.object.(Invoker); ok {
		var err error
		if instance, err = invoker.Invoke(ctx, Merge(opts)); err != nil {
			return nil, wrapDependencyError(name, "invoke", err)
		}
	}
	c.store(scope, name, instance)
	return instance, nil
}

// resolveCallback invokes the factory on every resolution; only the latest
// result is remembered.
func (c *Container) resolveCallback(ctx context.Context, scope, name string, view entryView, opts Options) (any, error) {
	instance, err := view.factory(ctx, Merge(opts))
	if err != nil {
		return nil, wrapDependencyError(name, "callback", err)
	}
	c.store(scope, name, instance)
	return instance, nil
}

func (c *Container) store(scope, name string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket(c.instances, scope)[name] = instance
}

// Clear drops the cached instance of name in the default scope.
func (c *Container) Clear(name string) {
	c.ClearIn(name, DefaultScope)
}

// ClearIn drops the cached instance of name in scope, forcing the next
// resolution to rebuild it. The definition is kept.
func (c *Container) ClearIn(name, scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.instances[scope][name]; ok {
		delete(c.instances[scope], name)
		c.logger.Debug("dependency cleared", zap.String("dependency", name), zap.String("scope", scope))
	}
}

func (c *Container) effectiveScope(opts Options) string {
	if scope := opts.String(OptScope); scope != "" {
		return scope
	}
	return c.Scope()
}

// wrapDependencyError keeps container errors as they are and wraps anything
// else with the dependency name and operation.
func wrapDependencyError(name, operation string, err error) error {
	var coded *errs.Error
	if errors.As(err, &coded) {
		return err
	}
	return NewDependencyError(name, operation, err)
}
