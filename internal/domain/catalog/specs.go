package catalog

import "encoding/json"

// Product specifications travel double-encoded: the stored field is a list
// whose first element is the JSON serialization of the []SpecEntry list.
// Existing storefront forms depend on this shape, so it is preserved as-is
// rather than flattened.

// EncodeSpecs produces the stored wrapper form.
func EncodeSpecs(entries []SpecEntry) []string {
	if len(entries) == 0 {
		return []string{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return []string{}
	}
	return []string{string(data)}
}

// DecodeSpecs unwraps the stored form. An absent or malformed element 0
// yields an empty list, never an error.
func DecodeSpecs(stored []string) []SpecEntry {
	if len(stored) == 0 {
		return []SpecEntry{}
	}
	var entries []SpecEntry
	if err := json.Unmarshal([]byte(stored[0]), &entries); err != nil {
		return []SpecEntry{}
	}
	if entries == nil {
		return []SpecEntry{}
	}
	return entries
}

// ParseSpecsField interprets the raw multipart "specifications" field. A
// JSON array of entries is accepted directly; anything else yields an
// empty list.
func ParseSpecsField(raw string) []SpecEntry {
	if raw == "" {
		return []SpecEntry{}
	}
	var entries []SpecEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return []SpecEntry{}
	}
	return entries
}
