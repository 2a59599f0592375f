package hangar

import (
	"context"
	"sort"
)

// DependencyGraph records which dependencies reference which others through
// Reference arguments.
type DependencyGraph struct {
	nodes map[string]*node
	order []string // Preserve insertion order
}

type node struct {
	name         string
	dependencies []string
}

// NewDependencyGraph returns an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[string]*node),
		order: make([]string, 0),
	}
}

// AddNode adds a node with its dependencies.
// Nodes are processed in the order they are added when no dependencies exist.
func (g *DependencyGraph) AddNode(name string, dependencies []string) {
	if _, exists := g.nodes[name]; !exists {
		g.order = append(g.order, name)
	}
	g.nodes[name] = &node{
		name:         name,
		dependencies: dependencies,
	}
}

// GetDependencies lists the names a node references.
func (g *DependencyGraph) GetDependencies(name string) []string {
	if node, ok := g.nodes[name]; ok {
		return node.dependencies
	}

	return nil
}

// HasNode reports whether name was added.
func (g *DependencyGraph) HasNode(name string) bool {
	_, ok := g.nodes[name]

	return ok
}

// TopologicalSort returns nodes in dependency order, dependencies first.
// A cycle yields a CIRCULAR_DEPENDENCY error naming the path.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	visited := make(map[string]bool)
	var stack []string
	result := make([]string, 0, len(g.nodes))

	for _, name := range g.order {
		if err := g.visit(name, visited, &stack, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// visit performs DFS traversal; stack holds the path being explored.
func (g *DependencyGraph) visit(name string, visited map[string]bool, stack, result *[]string) error {
	if visited[name] {
		return nil
	}

	for i, onPath := range *stack {
		if onPath == name {
			cycle := append(append([]string(nil), (*stack)[i:]...), name)

			return ErrCircularDependency(cycle)
		}
	}

	node := g.nodes[name]
	if node == nil {
		// Referenced but not registered here; resolution will report it.
		return nil
	}

	*stack = append(*stack, name)

	for _, dep := range node.dependencies {
		if err := g.visit(dep, visited, stack, result); err != nil {
			return err
		}
	}

	*stack = (*stack)[:len(*stack)-1]
	visited[name] = true
	*result = append(*result, name)

	return nil
}

// Graph builds the dependency graph of every name visible from scope.
func (c *Container) Graph(scope string) *DependencyGraph {
	c.mu.RLock()
	defer c.mu.RUnlock()

	graph := NewDependencyGraph()
	for _, name := range c.visibleNames(scope) {
		graph.AddNode(name, references(c.effectiveDefinition(scope, name)))
	}
	return graph
}

// Dependencies lists the names referenced by the definition of name as seen
// from scope.
func (c *Container) Dependencies(name, scope string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return references(c.effectiveDefinition(scope, name))
}

// Validate reports the first reference cycle among the definitions visible
// from scope.
func (c *Container) Validate(scope string) error {
	_, err := c.Graph(scope).TopologicalSort()
	return err
}

// Warm resolves, dependencies first, every name visible from scope except
// callbacks and fresh configurations, filling the scope's cache.
func (c *Container) Warm(ctx context.Context, scope string) error {
	order, err := c.Graph(scope).TopologicalSort()
	if err != nil {
		return err
	}

	for _, name := range order {
		c.mu.RLock()
		def := c.effectiveDefinition(scope, name)
		c.mu.RUnlock()

		if def.kind == KindCallback || (def.kind == KindConfig && def.config.Bool(OptFresh)) {
			continue
		}
		if _, err := c.GetContext(ctx, name, Options{OptScope: scope}); err != nil {
			return err
		}
	}

	return nil
}

// visibleNames lists names registered in scope or globally. Callers hold the lock.
func (c *Container) visibleNames(scope string) []string {
	seen := make(map[string]struct{})
	for name := range c.registry[GlobalScope] {
		seen[name] = struct{}{}
	}
	for name := range c.registry[scope] {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// effectiveDefinition layers the scope's definition over the global one.
// Callers hold the lock.
func (c *Container) effectiveDefinition(scope, name string) Definition {
	named, hasNamed := c.registry[scope][name]
	global, hasGlobal := c.registry[GlobalScope][name]
	switch {
	case !hasNamed:
		return global
	case hasGlobal && scope != GlobalScope && named.kind == KindConfig && global.kind == KindConfig:
		named.config = Merge(global.config, named.config)
		return named
	default:
		return named
	}
}

// references collects the names of References in a configuration's params
// and setter arguments, in first-seen order.
func references(def Definition) []string {
	if def.kind != KindConfig {
		return nil
	}
	var names []string
	seen := make(map[string]bool)
	collect := func(v any) {
		walkReferences(v, func(ref *Reference) {
			if !seen[ref.Name()] {
				seen[ref.Name()] = true
				names = append(names, ref.Name())
			}
		})
	}
	collect(def.config.Map(OptParams))
	setters := def.config.Map(OptSetters)
	for _, method := range sortedKeys(setters) {
		collect(setters[method])
	}
	return names
}

func walkReferences(v any, fn func(*Reference)) {
	switch t := v.(type) {
	case *Reference:
		fn(t)
	case Options:
		for _, key := range sortedKeys(t) {
			walkReferences(t[key], fn)
		}
	case map[string]any:
		walkReferences(Options(t), fn)
	case []any:
		for _, item := range t {
			walkReferences(item, fn)
		}
	}
}
