package hangar

// ConstructorMethod names the constructor when asking a Class for parameters.
const ConstructorMethod = "new"

// Param describes one parameter of a constructor or setter.
type Param struct {
	Name     string
	Optional bool
	Default  any
}

// Required declares a parameter without a default.
func Required(name string) Param {
	return Param{Name: name}
}

// Optional declares a parameter that falls back to def when unbound.
func Optional(name string, def any) Param {
	return Param{Name: name, Optional: true, Default: def}
}

// Constructor builds an instance from positional arguments ordered as Params.
type Constructor struct {
	Params []Param
	New    func(args []any) (any, error)
}

// Setter applies positional arguments, ordered as Params, to an instance.
type Setter struct {
	Params []Param
	Apply  func(instance any, args []any) error
}

// Class is the metadata the container needs about a constructible type:
// what it implements, what it descends from, and how to build and configure it.
type Class struct {
	Name string
	Path string

	// Interfaces lists the interface names the class satisfies.
	Interfaces []string

	// Ancestors lists parent class names, nearest parent first.
	Ancestors []string

	Constructor Constructor
	Setters     map[string]Setter
}

// Parameters returns the ordered parameter list of method, which is either
// ConstructorMethod or the name of a setter.
func (c *Class) Parameters(method string) ([]Param, error) {
	if method == ConstructorMethod {
		return c.Constructor.Params, nil
	}
	setter, ok := c.Setters[method]
	if !ok {
		return nil, ErrMethodNotFound(c.Name, method)
	}
	return setter.Params, nil
}

// Implements reports whether the class satisfies every named interface.
func (c *Class) Implements(names ...string) bool {
	return containsAll(c.Interfaces, names)
}

// Extends reports whether the class descends from every named class.
func (c *Class) Extends(names ...string) bool {
	return containsAll(c.Ancestors, names)
}

// matchers lists the observer keys that apply to the class, least specific
// first: interfaces, ancestors from the root down, then the class itself.
func (c *Class) matchers() []string {
	out := make([]string, 0, len(c.Interfaces)+len(c.Ancestors)+1)
	out = append(out, c.Interfaces...)
	for i := len(c.Ancestors) - 1; i >= 0; i-- {
		out = append(out, c.Ancestors[i])
	}
	return append(out, c.Name)
}

func containsAll(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, name := range have {
		set[name] = struct{}{}
	}
	for _, name := range want {
		if _, ok := set[name]; !ok {
			return false
		}
	}
	return true
}

// ClassLoader makes classes available to the container.
//
// Load is asked to make className, found at classPath, available. It is not
// an error for the class to be missing afterwards; Lookup reports that.
// The container never holds its own lock while calling Load, so a loader may
// query the container.
type ClassLoader interface {
	Load(className, classPath string) error
	Lookup(className string) (*Class, bool)
}
