// SPDX-License-Identifier: MIT

package config

// cloneMap returns an alias-free deep copy of a configuration mapping.
// Only reference types (maps/slices) are cloned; scalars are copied by
// assignment.
func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(in any) any {
	switch v := in.(type) {
	case map[string]any:
		return cloneMap(v)
	case map[string]string:
		return cloneStringMap(v)
	case []any:
		return cloneSlice(v)
	case []string:
		return cloneStringSlice(v)
	default:
		return in
	}
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneSlice(in []any) []any {
	if in == nil {
		return nil
	}
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = cloneValue(v)
	}
	return out
}

func cloneStringSlice(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
