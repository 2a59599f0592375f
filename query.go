package hangar

// EntryInfo describes a registered dependency as seen from one scope.
type EntryInfo struct {
	// ID identifies the materialized entry; empty until first resolution.
	ID        string
	Name      string
	Scope     string
	Kind      Kind
	ClassName string
	Fresh     bool

	// Materialized reports whether the definition has been resolved at least once.
	Materialized bool

	// Cached reports whether the scope holds an instance for the name.
	Cached bool
}

// EntryQuery defines criteria for querying entries.
type EntryQuery struct {
	// Scope selects the scope to inspect; empty means the ambient scope.
	Scope string

	// Kind filters by resolution strategy. Zero matches all kinds.
	Kind Kind

	// ClassName filters configurations by class. Empty matches all.
	ClassName string

	// Cached filters by cache state. nil matches all.
	Cached *bool
}

// Inspect returns diagnostic information about name as seen from scope.
func (c *Container) Inspect(name, scope string) EntryInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.inspect(name, scope)
}

func (c *Container) inspect(name, scope string) EntryInfo {
	info := EntryInfo{Name: name, Scope: scope}

	def := c.effectiveDefinition(scope, name)
	info.Kind = def.kind
	if def.kind == KindConfig {
		info.ClassName = def.config.String(OptClassName)
		info.Fresh = def.config.Bool(OptFresh)
	}

	if e, ok := c.entries[scope][name]; ok {
		info.ID = e.id
		info.Materialized = true
	} else if e, ok := c.entries[GlobalScope][name]; ok {
		info.ID = e.id
		info.Materialized = true
	}
	_, info.Cached = c.instances[scope][name]

	return info
}

// Entries returns information about every name visible from scope.
func (c *Container) Entries(scope string) []EntryInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := c.visibleNames(scope)
	infos := make([]EntryInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, c.inspect(name, scope))
	}
	return infos
}

// Query returns the entries matching query.
//
// Example:
//
//	// Find all cached configurations of class Mailer
//	cached := true
//	results := c.Query(hangar.EntryQuery{
//	    Kind:      hangar.KindConfig,
//	    ClassName: "Mailer",
//	    Cached:    &cached,
//	})
func (c *Container) Query(query EntryQuery) []EntryInfo {
	scope := query.Scope
	if scope == "" {
		scope = c.Scope()
	}

	var results []EntryInfo
	for _, info := range c.Entries(scope) {
		if query.Kind != 0 && info.Kind != query.Kind {
			continue
		}
		if query.ClassName != "" && info.ClassName != query.ClassName {
			continue
		}
		if query.Cached != nil && info.Cached != *query.Cached {
			continue
		}
		results = append(results, info)
	}

	return results
}

// QueryNames returns the names of entries matching query.
func (c *Container) QueryNames(query EntryQuery) []string {
	results := c.Query(query)
	names := make([]string, len(results))
	for i, info := range results {
		names[i] = info.Name
	}
	return names
}
