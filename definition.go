package hangar

import (
	"context"
)

// Well-known keys of a class configuration.
const (
	OptClassName = "className"
	OptClassPath = "classPath"
	OptImplement = "implement"
	OptExtend    = "extend"
	OptParams    = "params"
	OptSetters   = "setters"
	OptFresh     = "fresh"
	OptScope     = "scope"
)

// Options is a free-form configuration mapping. It is used for class
// configurations, observer rules and call-time options alike.
type Options map[string]any

// lookup returns the value at key when it is present and non-nil.
func (o Options) lookup(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the string at key, or "".
func (o Options) String(key string) string {
	v, _ := o.lookup(key)
	s, _ := v.(string)
	return s
}

// Bool reports whether the value at key is boolean true.
func (o Options) Bool(key string) bool {
	v, _ := o.lookup(key)
	b, _ := v.(bool)
	return b
}

// Map returns the nested mapping at key, or nil.
func (o Options) Map(key string) Options {
	v, _ := o.lookup(key)
	m, _ := asOptions(v)
	return m
}

// Strings returns the value at key as a list of names. A single string is
// returned as a one-element list.
func (o Options) Strings(key string) []string {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Clone returns a deep copy of the nested mappings. Leaf values are shared.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	return cloneOptions(o)
}

// without returns a copy of o lacking key.
func (o Options) without(key string) Options {
	out := make(Options, len(o))
	for k, v := range o {
		if k != key {
			out[k] = v
		}
	}
	return out
}

func asOptions(v any) (Options, bool) {
	switch t := v.(type) {
	case Options:
		return t, true
	case map[string]any:
		return Options(t), true
	}
	return nil, false
}

// Factory builds an instance from call-time options.
type Factory func(ctx context.Context, opts Options) (any, error)

// Invoke implements Invoker.
func (f Factory) Invoke(ctx context.Context, opts Options) (any, error) {
	return f(ctx, opts)
}

// Invoker is implemented by object definitions that produce their instance
// instead of being the instance.
type Invoker interface {
	Invoke(ctx context.Context, opts Options) (any, error)
}

// Definition is the raw value registered under a name: exactly one of a
// pre-built object, a factory callback or a class configuration.
type Definition struct {
	kind    Kind
	scope   string
	object  any
	factory Factory
	config  Options
}

// Object defines a pre-built value. If v implements Invoker it is invoked
// with the call-time options on every resolution.
func Object(v any) Definition {
	return Definition{kind: KindObject, object: v}
}

// Callback defines a factory that is invoked on every resolution.
func Callback(fn Factory) Definition {
	return Definition{kind: KindCallback, factory: fn}
}

// Config defines a class configuration. A "scope" key selects the scope the
// definition is registered into and is not kept in the stored data.
func Config(opts Options) Definition {
	data := opts.Clone()
	if data == nil {
		data = Options{}
	}
	scope := data.String(OptScope)
	delete(data, OptScope)
	return Definition{kind: KindConfig, scope: scope, config: data}
}

// In returns a copy of d registered into scope.
func (d Definition) In(scope string) Definition {
	d.scope = scope
	return d
}

// Kind returns the resolution strategy.
func (d Definition) Kind() Kind { return d.kind }

// Scope returns the explicit registration scope, or "" for the ambient one.
func (d Definition) Scope() string { return d.scope }

// Options returns a copy of the class configuration, nil for other kinds.
func (d Definition) Options() Options { return d.config.Clone() }

func (d Definition) valid() bool {
	switch d.kind {
	case KindObject:
		return d.object != nil
	case KindCallback:
		return d.factory != nil
	case KindConfig:
		return d.config != nil
	}
	return false
}

// ClassConfig builds a class configuration without spelling out map keys.
//
//	def := hangar.NewClassConfig("Mailer", "app/mail").
//	    Implement("Transport").
//	    Param("host", "smtp.local").
//	    Setter("SetLogger", hangar.Options{"logger": c.Load("logger", nil)}).
//	    Definition()
type ClassConfig struct {
	opts Options
}

// NewClassConfig starts a configuration for className found at classPath.
func NewClassConfig(className, classPath string) *ClassConfig {
	return &ClassConfig{opts: Options{OptClassName: className, OptClassPath: classPath}}
}

// Implement requires the class to implement every named interface.
func (b *ClassConfig) Implement(interfaces ...string) *ClassConfig {
	b.opts[OptImplement] = append(b.opts.Strings(OptImplement), interfaces...)
	return b
}

// Extend requires the class to descend from every named class.
func (b *ClassConfig) Extend(classes ...string) *ClassConfig {
	b.opts[OptExtend] = append(b.opts.Strings(OptExtend), classes...)
	return b
}

// Param sets a named constructor argument. Lazy values are evaluated at bind time.
func (b *ClassConfig) Param(name string, value any) *ClassConfig {
	params := b.opts.Map(OptParams)
	if params == nil {
		params = Options{}
		b.opts[OptParams] = params
	}
	params[name] = value
	return b
}

// Setter calls method with the named arguments after construction.
func (b *ClassConfig) Setter(method string, args Options) *ClassConfig {
	setters := b.opts.Map(OptSetters)
	if setters == nil {
		setters = Options{}
		b.opts[OptSetters] = setters
	}
	if args == nil {
		args = Options{}
	}
	setters[method] = args
	return b
}

// Fresh disables caching: every resolution constructs a new instance.
func (b *ClassConfig) Fresh() *ClassConfig {
	b.opts[OptFresh] = true
	return b
}

// In registers the configuration into scope.
func (b *ClassConfig) In(scope string) *ClassConfig {
	b.opts[OptScope] = scope
	return b
}

// Options returns a copy of the built configuration.
func (b *ClassConfig) Options() Options {
	return b.opts.Clone()
}

// Definition returns the configuration as a Definition.
func (b *ClassConfig) Definition() Definition {
	return Config(b.opts)
}
