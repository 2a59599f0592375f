package hangar

import (
	"context"
	"fmt"
)

// Resolve gets name from the ambient scope and asserts it to T.
func Resolve[T any](c *Container, name string) (T, error) {
	return ResolveWith[T](c, name, nil)
}

// ResolveWith resolves name with call-time options, with type safety.
func ResolveWith[T any](c *Container, name string, opts Options) (T, error) {
	return ResolveContext[T](context.Background(), c, name, opts)
}

// ResolveContext resolves name within ctx, with type safety.
func ResolveContext[T any](ctx context.Context, c *Container, name string, opts Options) (T, error) {
	var zero T

	instance, err := c.GetContext(ctx, name, opts)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(name, instance)
	}

	return typed, nil
}

// Must is Resolve that panics on failure. Meant for wiring in main.
func Must[T any](c *Container, name string) T {
	instance, err := Resolve[T](c, name)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", name, err))
	}

	return instance
}

// AddFactory registers a typed factory as a callback definition.
func AddFactory[T any](c *Container, name string, factory func(ctx context.Context, opts Options) (T, error)) error {
	return c.Add(name, Callback(func(ctx context.Context, opts Options) (any, error) {
		return factory(ctx, opts)
	}))
}
