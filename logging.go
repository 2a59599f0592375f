package hangar

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Logger returns the container's structured logger.
func (c *Container) Logger() *zap.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.logger
}

// LoggingMiddleware logs every resolution: debug on success, warn on failure.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FuncMiddleware{
		BeforeResolveFunc: func(ctx context.Context, scope, name string) error {
			logger.Debug("resolving dependency",
				zap.String("dependency", name),
				zap.String("scope", scope),
				zap.Strings("path", ResolutionPath(ctx)),
			)
			return nil
		},
		AfterResolveFunc: func(ctx context.Context, scope, name string, instance any, err error) error {
			if err != nil {
				logger.Warn("dependency resolution failed",
					zap.String("dependency", name),
					zap.String("scope", scope),
					zap.Error(err),
				)
				return nil
			}
			logger.Debug("dependency resolved",
				zap.String("dependency", name),
				zap.String("scope", scope),
				zap.String("type", fmt.Sprintf("%T", instance)),
			)
			return nil
		},
	}
}
