// Package hangar is a scoped dependency-injection container.
//
// A Container maps names to definitions (a pre-built object, a factory
// callback, or a class configuration) and turns them into live instances on
// demand. Registrations, cached instances and observers are partitioned by
// scope; the global scope "*" is visible from every other scope and has the
// lowest priority.
//
//	c := hangar.New(hangar.WithClassLoader(catalog))
//	_ = c.Add("mailer", hangar.Config(hangar.Options{
//	    "className": "Mailer",
//	    "classPath": "app/mail",
//	    "params":    hangar.Options{"host": "smtp.local"},
//	}))
//	mailer, err := hangar.Resolve[*Mailer](c, "mailer")
package hangar

const (
	// GlobalScope is visible from every other scope and always consulted.
	GlobalScope = "*"

	// DefaultScope is active when no other scope has been selected.
	DefaultScope = "default"
)

// Kind is the resolution strategy of a definition.
type Kind int

const (
	// KindObject is a pre-built value, returned as-is or invoked when it
	// implements Invoker.
	KindObject Kind = iota + 1

	// KindCallback is a factory invoked on every resolution.
	KindCallback

	// KindConfig is a class configuration constructed through the class loader.
	KindConfig
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindCallback:
		return "callback"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// New creates an empty container with the global and default scopes in place.
func New(opts ...Option) *Container {
	return newContainer(opts...)
}
