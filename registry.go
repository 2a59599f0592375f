package hangar

import (
	"sort"

	"go.uber.org/zap"
)

// Add registers def under name, replacing any previous definition in the
// same scope. The scope is the definition's own, else the ambient scope.
// Once a name has been resolved in a scope its kind is fixed there; a
// definition of another kind is rejected.
func (c *Container) Add(name string, def Definition) error {
	return c.register(name, def, false)
}

// Set registers def under name like Add, except that two class
// configurations deep-merge, the new one over the old.
func (c *Container) Set(name string, def Definition) error {
	return c.register(name, def, true)
}

func (c *Container) register(name string, def Definition, merge bool) error {
	if name == "" || !def.valid() {
		return ErrInvalidDefinition(name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	scope := def.scope
	if scope == "" {
		scope = c.scope
	}
	if c.locked[scope] {
		return ErrLockedScope(scope, name)
	}

	if e, ok := c.entries[scope][name]; ok && e.kind != def.kind {
		return ErrKindChange(name, scope, e.kind, def.kind)
	}

	defs := bucket(c.registry, scope)
	if current, ok := defs[name]; merge && ok && current.kind == KindConfig && def.kind == KindConfig {
		def.config = Merge(current.config, def.config)
	} else if def.kind == KindConfig {
		def.config = def.config.Clone()
	}
	def.scope = scope
	defs[name] = def

	c.invalidate(scope, name)

	c.logger.Debug("dependency registered",
		zap.String("dependency", name),
		zap.String("scope", scope),
		zap.Stringer("kind", def.kind),
		zap.Bool("merged", merge),
	)

	return nil
}

// invalidate drops the cached instances of name and marks its entries stale.
// A global definition backs every scope, so a global change reaches them all.
func (c *Container) invalidate(scope, name string) {
	for s, entries := range c.entries {
		if scope == GlobalScope || s == scope {
			if e, ok := entries[name]; ok {
				e.stale = true
			}
		}
	}
	for s, instances := range c.instances {
		if scope == GlobalScope || s == scope {
			delete(instances, name)
		}
	}
}

// Has reports whether name is registered in any scope.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, defs := range c.registry {
		if _, ok := defs[name]; ok {
			return true
		}
	}
	return false
}

// HasIn reports whether name is registered in scope itself.
func (c *Container) HasIn(name, scope string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.registry[scope][name]
	return ok
}

// Definition returns the definition registered at (scope, name).
func (c *Container) Definition(name, scope string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.registry[scope][name]
	if ok && def.kind == KindConfig {
		def.config = def.config.Clone()
	}
	return def, ok
}

// Names returns the names registered directly in scope, sorted.
func (c *Container) Names(scope string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return sortedKeys(c.registry[scope])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
