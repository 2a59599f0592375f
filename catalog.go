package hangar

import (
	"fmt"
	"sort"
	"sync"
)

// Catalog is an in-memory ClassLoader. Classes are defined up front under a
// path and only become visible to Lookup once loaded from that same path.
type Catalog struct {
	defined map[string]*Class
	loaded  map[string]bool
	mu      sync.RWMutex
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		defined: make(map[string]*Class),
		loaded:  make(map[string]bool),
	}
}

// Define adds a class to the catalog.
func (c *Catalog) Define(class *Class) error {
	if class == nil || class.Name == "" {
		return fmt.Errorf("catalog: class name cannot be empty")
	}
	if class.Constructor.New == nil {
		return fmt.Errorf("catalog: class %s has no constructor", class.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.defined[class.Name]; exists {
		return fmt.Errorf("catalog: class %s already defined", class.Name)
	}
	c.defined[class.Name] = class

	return nil
}

// MustDefine is Define that panics on error.
func (c *Catalog) MustDefine(classes ...*Class) *Catalog {
	for _, class := range classes {
		if err := c.Define(class); err != nil {
			panic(err)
		}
	}
	return c
}

// Load implements ClassLoader. A class defined under a different path, or
// not defined at all, stays unavailable.
func (c *Catalog) Load(className, classPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if class, ok := c.defined[className]; ok && class.Path == classPath {
		c.loaded[className] = true
	}
	return nil
}

// Lookup implements ClassLoader.
func (c *Catalog) Lookup(className string) (*Class, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded[className] {
		return nil, false
	}
	class, ok := c.defined[className]
	return class, ok
}

// Classes returns the names of all defined classes, sorted.
func (c *Catalog) Classes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.defined))
	for name := range c.defined {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
