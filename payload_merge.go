package fileio

// MergePayloads composes decoded payloads ordered from strongest to weakest.
// Maps are merged key by key and recursively; any other value from a
// stronger layer wins outright, including slices. A nil layer contributes
// nothing. Inputs are never mutated; the result shares no maps or slices
// with them.
func MergePayloads(layers ...any) any {
	if len(layers) == 0 {
		return nil
	}
	merged := clonePayload(layers[len(layers)-1])
	for i := len(layers) - 2; i >= 0; i-- {
		merged = mergePayload(layers[i], merged)
	}
	return merged
}

// FillDefaults returns a migration that adds the keys of defaults missing from
// a map payload, recursing into nested maps. Existing values are kept.
func FillDefaults(defaults map[string]any) MigrationFunc {
	snapshot := clonePayload(defaults)
	return func(data any) (any, error) {
		return MergePayloads(data, snapshot), nil
	}
}

func mergePayload(strong, weak any) any {
	if strong == nil {
		return clonePayload(weak)
	}
	strongMap, ok := asPayloadMap(strong)
	if !ok {
		return clonePayload(strong)
	}
	weakMap, ok := asPayloadMap(weak)
	if !ok {
		return clonePayload(strongMap)
	}
	result := make(map[string]any, len(strongMap)+len(weakMap))
	for key, value := range weakMap {
		result[key] = clonePayload(value)
	}
	for key, value := range strongMap {
		if existing, ok := result[key]; ok {
			result[key] = mergePayload(value, existing)
			continue
		}
		result[key] = clonePayload(value)
	}
	return result
}

func clonePayload(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		if typed == nil {
			return typed
		}
		clone := make(map[string]any, len(typed))
		for key, v := range typed {
			clone[key] = clonePayload(v)
		}
		return clone
	case map[any]any:
		if m, ok := asPayloadMap(typed); ok {
			return clonePayload(m)
		}
		return typed
	case []any:
		if typed == nil {
			return typed
		}
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = clonePayload(v)
		}
		return clone
	default:
		return value
	}
}

func asPayloadMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out, err := payloadMap("merge", typed)
		if err != nil {
			return nil, false
		}
		return out, true
	default:
		return nil, false
	}
}
