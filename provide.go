package hangar

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/go-utils/errs"
)

// InjectMode selects how a provided function receives a dependency.
type InjectMode int

const (
	// InjectEager resolves the dependency before the function is called.
	InjectEager InjectMode = iota

	// InjectLazy passes a *Reference the function resolves when it needs to.
	InjectLazy

	// InjectOptional resolves the dependency, passing nil when it is not registered.
	InjectOptional
)

// InjectOption names one argument of a provided function.
type InjectOption struct {
	Name    string
	Mode    InjectMode
	Options Options
}

// Inject creates an eager injection option for a dependency.
func Inject(name string) InjectOption {
	return InjectOption{Name: name, Mode: InjectEager}
}

// LazyInject creates a lazy injection option. The argument must accept a
// *Reference (or Lazy).
func LazyInject(name string) InjectOption {
	return InjectOption{Name: name, Mode: InjectLazy}
}

// OptionalInject creates an injection option that tolerates a missing dependency.
func OptionalInject(name string) InjectOption {
	return InjectOption{Name: name, Mode: InjectOptional}
}

// With returns a copy of the option that resolves with opts.
func (o InjectOption) With(opts Options) InjectOption {
	o.Options = opts.Clone()
	return o
}

// Provide registers a Go function as a callback definition. It accepts
// InjectOption arguments followed by the function, which receives the
// resolved dependencies in order and returns the instance and an optional
// error. Dependencies resolve in the scope the provided name is resolved in.
//
// Usage:
//
//	hangar.Provide(c, "repo",
//	    hangar.Inject("db"),
//	    hangar.OptionalInject("tracer"),
//	    hangar.LazyInject("cache"),
//	    func(db *sql.DB, tracer *Tracer, cache *hangar.Reference) (*Repo, error) {
//	        return &Repo{db: db, tracer: tracer, cache: cache}, nil
//	    },
//	)
func Provide(c *Container, name string, args ...any) error {
	var (
		deps      []InjectOption
		factoryFn any
	)

	for _, arg := range args {
		switch v := arg.(type) {
		case InjectOption:
			deps = append(deps, v)
		default:
			if factoryFn != nil {
				return fmt.Errorf("provide %s: multiple factory functions provided", name)
			}
			factoryFn = arg
		}
	}

	if factoryFn == nil {
		return fmt.Errorf("provide %s: no factory function provided", name)
	}

	params := make([]Param, len(deps))
	for i, dep := range deps {
		params[i] = Required(dep.Name)
	}
	ctor, err := NewConstructor(factoryFn, params...)
	if err != nil {
		return fmt.Errorf("provide %s: %w", name, err)
	}

	return c.Add(name, Callback(func(ctx context.Context, opts Options) (any, error) {
		resolved := make([]any, len(deps))
		for i, dep := range deps {
			value, err := c.resolveDep(ctx, opts.String(OptScope), dep)
			if err != nil {
				return nil, err
			}
			resolved[i] = value
		}
		return ctor.New(resolved)
	}))
}

// resolveDep resolves a single dependency based on its mode.
func (c *Container) resolveDep(ctx context.Context, scope string, dep InjectOption) (any, error) {
	opts := dep.Options.Clone()
	if scope != "" && opts.String(OptScope) == "" {
		if opts == nil {
			opts = Options{}
		}
		opts[OptScope] = scope
	}

	switch dep.Mode {
	case InjectLazy:
		return c.Load(dep.Name, opts), nil
	case InjectOptional:
		value, err := c.GetContext(ctx, dep.Name, opts)
		if err != nil && isNotFound(err, dep.Name) {
			return nil, nil
		}
		return value, err
	default:
		return c.GetContext(ctx, dep.Name, opts)
	}
}

// isNotFound reports whether err says that name itself is missing, as
// opposed to one of its own dependencies.
func isNotFound(err error, name string) bool {
	if !errors.Is(err, ErrDependencyNotFoundSentinel) {
		return false
	}
	var coded *errs.Error
	return errors.As(err, &coded) && coded.GetContext()["dependency"] == name
}
