package hangar

// Merge composes layers ordered from weakest to strongest into a new mapping.
// Nested mappings merge key by key; any other value, lists included, from a
// stronger layer replaces the weaker one wholesale. Inputs are not modified.
func Merge(layers ...Options) Options {
	merged := Options{}
	for _, layer := range layers {
		mergeInto(merged, layer)
	}
	return merged
}

// mergeInto overlays strong onto weak in place.
func mergeInto(weak, strong Options) {
	for key, value := range strong {
		existing, ok := weak[key]
		if !ok {
			weak[key] = cloneValue(value)
			continue
		}
		weak[key] = mergeValue(existing, value)
	}
}

func mergeValue(weak, strong any) any {
	strongMap, strongIsMap := asOptions(strong)
	weakMap, weakIsMap := asOptions(weak)
	if !strongIsMap || !weakIsMap || strongMap == nil {
		return cloneValue(strong)
	}
	result := cloneOptions(weakMap)
	mergeInto(result, strongMap)
	return restoreMapType(strong, result)
}

func cloneOptions(o Options) Options {
	if o == nil {
		return nil
	}
	clone := make(Options, len(o))
	for key, value := range o {
		clone[key] = cloneValue(value)
	}
	return clone
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Options:
		return cloneOptions(t)
	case map[string]any:
		if t == nil {
			return t
		}
		return map[string]any(cloneOptions(Options(t)))
	case []any:
		if t == nil {
			return t
		}
		clone := make([]any, len(t))
		for i, item := range t {
			clone[i] = cloneValue(item)
		}
		return clone
	case []string:
		if t == nil {
			return t
		}
		return append([]string(nil), t...)
	default:
		return v
	}
}

// restoreMapType keeps the concrete map type of the stronger value.
func restoreMapType(like any, m Options) any {
	if _, ok := like.(map[string]any); ok {
		return map[string]any(m)
	}
	return m
}
