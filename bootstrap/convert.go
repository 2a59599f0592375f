package bootstrap

import (
	"fmt"

	"github.com/xraph/hangar"
)

// Special single-key mappings recognised in option values.
const (
	keyRef = "$ref"
	keyEnv = "$env"
)

func convertOptions(c *hangar.Container, env map[string]string, raw map[string]any) (hangar.Options, error) {
	opts := make(hangar.Options, len(raw))
	for key, value := range raw {
		converted, err := convertValue(c, env, value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		opts[key] = converted
	}
	return opts, nil
}

// convertValue turns decoded YAML into option values. {$ref: name} (or
// {$ref: {name: ..., options: ...}}) becomes a Reference and {$env: NAME}
// the environment value, nil when unset.
func convertValue(c *hangar.Container, env map[string]string, value any) (any, error) {
	switch t := value.(type) {
	case map[string]any:
		if ref, ok := t[keyRef]; ok && len(t) == 1 {
			return convertRef(c, env, ref)
		}
		if name, ok := t[keyEnv]; ok && len(t) == 1 {
			key, ok := name.(string)
			if !ok {
				return nil, fmt.Errorf("%s expects a variable name, got %T", keyEnv, name)
			}
			if v, ok := env[key]; ok {
				return v, nil
			}
			return nil, nil
		}
		return convertOptions(c, env, t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			converted, err := convertValue(c, env, item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = converted
		}
		return out, nil
	default:
		return value, nil
	}
}

func convertRef(c *hangar.Container, env map[string]string, ref any) (any, error) {
	switch t := ref.(type) {
	case string:
		return c.Load(t, nil), nil
	case map[string]any:
		name, _ := t["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("%s requires a name", keyRef)
		}
		var opts hangar.Options
		if raw, ok := t["options"].(map[string]any); ok {
			var err error
			if opts, err = convertOptions(c, env, raw); err != nil {
				return nil, err
			}
		}
		return c.Load(name, opts), nil
	default:
		return nil, fmt.Errorf("%s expects a name, got %T", keyRef, ref)
	}
}
