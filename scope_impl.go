package hangar

import (
	"sort"

	"go.uber.org/zap"
)

// Scope returns the ambient scope.
func (c *Container) Scope() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.scope
}

// SetScope changes the ambient scope used by operations that do not name
// one. It persists until changed again.
func (c *Container) SetScope(scope string) {
	if scope == "" {
		scope = DefaultScope
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.scope = scope
	c.logger.Debug("scope selected", zap.String("scope", scope))
}

// Lock rejects further registrations into scope, the default scope when
// none is given.
func (c *Container) Lock(scope ...string) {
	target := DefaultScope
	if len(scope) > 0 && scope[0] != "" {
		target = scope[0]
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.locked[target] = true
	c.logger.Debug("scope locked", zap.String("scope", target))
}

// Unlock accepts registrations into scope again.
func (c *Container) Unlock(scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.locked, scope)
	c.logger.Debug("scope unlocked", zap.String("scope", scope))
}

// IsLocked reports whether scope rejects registrations.
func (c *Container) IsLocked(scope string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.locked[scope]
}

// Scopes returns every scope known to the container, sorted.
func (c *Container) Scopes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	for scope := range c.registry {
		seen[scope] = struct{}{}
	}
	for scope := range c.observers {
		seen[scope] = struct{}{}
	}
	for scope := range c.instances {
		seen[scope] = struct{}{}
	}

	scopes := make([]string, 0, len(seen))
	for scope := range seen {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)

	return scopes
}
