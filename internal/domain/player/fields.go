package player

// fieldAliases maps localized body keys to their canonical names.
var fieldAliases = map[string]string{
	"nombre":   "name",
	"posicion": "position",
	"equipoId": "team_id",
	"numero":   "number",
}

var canonicalFields = map[string]struct{}{
	"name":      {},
	"number":    {},
	"position":  {},
	"team_id":   {},
	"photo_url": {},
}

// NormalizeFields rewrites aliased keys to canonical ones and drops unknown keys.
// When a canonical key and its alias are both present, the canonical value wins.
func NormalizeFields(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		if _, ok := canonicalFields[key]; ok {
			out[key] = value
		}
	}
	for alias, canonical := range fieldAliases {
		value, ok := raw[alias]
		if !ok {
			continue
		}
		if _, exists := out[canonical]; exists {
			continue
		}
		out[canonical] = value
	}
	return out
}
