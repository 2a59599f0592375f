package hangar

import (
	"context"

	"go.uber.org/zap"
)

// resolveConfig builds, or reuses, an instance of a class configuration.
//
// Override order, weakest first: global definition, scope definition,
// global observers, scope observers, call-time options. A call carrying any
// option besides "scope" is customized: it always constructs and never
// touches the cache.
func (c *Container) resolveConfig(ctx context.Context, scope, name string, view entryView, opts Options) (any, error) {
	call := opts.without(OptScope)
	data := view.data

	className := data.String(OptClassName)
	if override := call.String(OptClassName); override != "" {
		className = override
		classPath := data.String(OptClassPath)
		if path := call.String(OptClassPath); path != "" {
			classPath = path
		}
		if err := c.loader.Load(className, classPath); err != nil {
			return nil, NewDependencyError(name, "load", err)
		}
	}

	class, ok := c.loader.Lookup(className)
	if !ok {
		return nil, ErrClassNotFound(name, className)
	}

	data = Merge(data, c.observersFor(scope, class))

	customized := len(call) > 0
	if !customized && view.cached && !data.Bool(OptFresh) {
		c.logger.Debug("dependency reused", zap.String("dependency", name), zap.String("scope", scope))
		return view.instance, nil
	}

	if required := data.Strings(OptImplement); len(required) > 0 && !class.Implements(required...) {
		return nil, ErrInterfaceNotSatisfied(name, required)
	}
	if required := data.Strings(OptExtend); len(required) > 0 && !class.Extends(required...) {
		return nil, ErrAncestorNotSatisfied(name, required)
	}

	instance, err := c.construct(ctx, name, class, data.Map(OptParams), call.Map(OptParams))
	if err != nil {
		return nil, err
	}

	setters := Merge(data.Map(OptSetters), call.Map(OptSetters))
	if err := c.applySetters(ctx, name, class, instance, setters); err != nil {
		return nil, err
	}

	if !customized {
		c.store(scope, name, instance)
	}

	c.logger.Debug("dependency constructed",
		zap.String("dependency", name),
		zap.String("scope", scope),
		zap.String("class", class.Name),
		zap.Bool("customized", customized),
	)

	return instance, nil
}

func (c *Container) construct(ctx context.Context, name string, class *Class, configured, explicit Options) (any, error) {
	params, err := class.Parameters(ConstructorMethod)
	if err != nil {
		return nil, err
	}
	args, err := bindArguments(ctx, params, explicit, configured)
	if err != nil {
		return nil, wrapDependencyError(name, "bind", err)
	}
	instance, err := class.Constructor.New(args)
	if err != nil {
		return nil, wrapDependencyError(name, "construct", err)
	}
	return instance, nil
}

// applySetters calls each configured setter, in name order, with its
// arguments bound against the setter's own parameter list.
func (c *Container) applySetters(ctx context.Context, name string, class *Class, instance any, setters Options) error {
	for _, method := range sortedKeys(setters) {
		params, err := class.Parameters(method)
		if err != nil {
			return err
		}
		configured, _ := asOptions(setters[method])
		args, err := bindArguments(ctx, params, nil, configured)
		if err != nil {
			return wrapDependencyError(name, "bind", err)
		}
		if err := class.Setters[method].Apply(instance, args); err != nil {
			return wrapDependencyError(name, "setter "+method, err)
		}
	}
	return nil
}

// bindArguments produces positional arguments for params. Each parameter
// takes, in order of preference: the explicit value, the configured value
// (evaluated first when Lazy), its own default when optional, or nil.
func bindArguments(ctx context.Context, params []Param, explicit, configured Options) ([]any, error) {
	args := make([]any, 0, len(params))
	for _, param := range params {
		if v, ok := explicit.lookup(param.Name); ok {
			args = append(args, v)
			continue
		}
		if v, ok := configured.lookup(param.Name); ok {
			value, err := evaluate(ctx, v)
			if err != nil {
				return nil, err
			}
			args = append(args, value)
			continue
		}
		if param.Optional {
			args = append(args, param.Default)
			continue
		}
		args = append(args, nil)
	}
	return args, nil
}

func evaluate(ctx context.Context, v any) (any, error) {
	if lazy, ok := v.(Lazy); ok {
		return lazy.Resolve(ctx)
	}
	return v, nil
}
