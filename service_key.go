package hangar

// Key provides type-safe dependency identification.
// Use NewKey to create typed keys for your dependencies.
type Key[T any] struct {
	name string
}

// NewKey creates a new typed dependency key.
//
// Example:
//
//	var MailerKey = hangar.NewKey[*Mailer]("mailer")
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the string name of the key.
func (k Key[T]) Name() string {
	return k.name
}

// AddWithKey registers def under a typed key.
func AddWithKey[T any](c *Container, key Key[T], def Definition) error {
	return c.Add(key.name, def)
}

// GetKey resolves a dependency using a typed key.
//
// Example:
//
//	mailer, err := hangar.GetKey(c, MailerKey, nil)
func GetKey[T any](c *Container, key Key[T], opts Options) (T, error) {
	return ResolveWith[T](c, key.name, opts)
}

// MustKey resolves a dependency using a typed key and panics on error.
func MustKey[T any](c *Container, key Key[T]) T {
	result, err := GetKey(c, key, nil)
	if err != nil {
		panic(err)
	}
	return result
}

// HasKey checks if a dependency is registered using a typed key.
func HasKey[T any](c *Container, key Key[T]) bool {
	return c.Has(key.name)
}

// InspectKey returns diagnostic information about a typed key in scope.
func InspectKey[T any](c *Container, key Key[T], scope string) EntryInfo {
	return c.Inspect(key.name, scope)
}
