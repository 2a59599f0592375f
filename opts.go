package hangar

import "go.uber.org/zap"

// Option configures a Container at construction.
type Option func(*Container)

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	}
}

// WithClassLoader sets the collaborator that provides classes for
// configuration definitions. Defaults to an empty Catalog.
func WithClassLoader(loader ClassLoader) Option {
	return func(c *Container) {
		if loader != nil {
			c.loader = loader
		}
	}
}

// WithMiddleware installs resolve middleware in order.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Container) {
		for _, mw := range middleware {
			if mw != nil {
				c.middleware.add(mw)
			}
		}
	}
}

// WithScope sets the initial ambient scope.
func WithScope(scope string) Option {
	return func(c *Container) {
		if scope != "" {
			c.scope = scope
		}
	}
}

// WithCycleDetection toggles circular dependency detection (default on).
func WithCycleDetection(enabled bool) Option {
	return func(c *Container) {
		c.detectCycles = enabled
	}
}
