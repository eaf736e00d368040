package catalog

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// YAML Normalization
// =============================================================================

// yamlToJSON converts a YAML recipe document to JSON bytes so the core
// parser only ever sees JSON-typed values.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	converted, err := jsonCompatible(doc)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(converted)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return out, nil
}

// jsonCompatible rewrites yaml.v3's decoded values into shapes the JSON
// encoder accepts: map keys must be strings.
func jsonCompatible(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		converted := make(map[string]any, len(v))
		for key, val := range v {
			c, err := jsonCompatible(val)
			if err != nil {
				return nil, err
			}
			converted[key] = c
		}
		return converted, nil
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, val := range v {
			s, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("non-string map key %v", key)
			}
			c, err := jsonCompatible(val)
			if err != nil {
				return nil, err
			}
			converted[s] = c
		}
		return converted, nil
	case []any:
		converted := make([]any, 0, len(v))
		for _, val := range v {
			c, err := jsonCompatible(val)
			if err != nil {
				return nil, err
			}
			converted = append(converted, c)
		}
		return converted, nil
	default:
		return v, nil
	}
}
