package hangar

import "go.uber.org/zap"

// Observe attaches opts, in the ambient scope, to every configuration whose
// class is class, implements it, or descends from it.
func (c *Container) Observe(class string, opts Options) {
	c.ObserveAll([]string{class}, opts)
}

// ObserveAll attaches the same opts to each of classes in the ambient scope.
func (c *Container) ObserveAll(classes []string, opts Options) {
	c.observe("", classes, opts)
}

// ObserveIn attaches opts to each of classes in scope.
func (c *Container) ObserveIn(scope string, classes []string, opts Options) {
	if scope == "" {
		scope = DefaultScope
	}
	c.observe(scope, classes, opts)
}

func (c *Container) observe(scope string, classes []string, opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if scope == "" {
		scope = c.scope
	}
	rules := bucket(c.observers, scope)
	for _, class := range classes {
		rule := opts.Clone()
		if rule == nil {
			rule = Options{}
		}
		rules[class] = rule
		c.logger.Debug("observer attached", zap.String("class", class), zap.String("scope", scope))
	}
}

// observersFor merges the rules matching class for scope. Global rules sit
// under the scope's own, and rules are folded from the least specific
// matcher to the class itself so the exact class wins.
func (c *Container) observersFor(scope string, class *Class) Options {
	c.mu.RLock()
	defer c.mu.RUnlock()

	named := c.observers[scope]
	global := c.observers[GlobalScope]

	merged := Options{}
	for _, matcher := range class.matchers() {
		if scope != GlobalScope {
			if rule, ok := global[matcher]; ok {
				mergeInto(merged, rule)
			}
		}
		if rule, ok := named[matcher]; ok {
			mergeInto(merged, rule)
		}
	}
	return merged
}
