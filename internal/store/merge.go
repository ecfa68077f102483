package store

import "strings"

// MergeKeywords unions the tokens of an existing keyword line with
// newly supplied keywords. The marker is stripped from the set and
// re-attached first, exactly once; ordering among the remaining
// tokens is whatever map iteration yields.
func MergeKeywords(existingLine, newKeywords string) string {
	set := make(map[string]struct{})
	for _, keyword := range strings.Split(newKeywords, " ") {
		set[keyword] = struct{}{}
	}
	for _, keyword := range strings.Split(existingLine, " ") {
		set[keyword] = struct{}{}
	}
	delete(set, Marker)

	merged := make([]string, 0, len(set))
	for keyword := range set {
		merged = append(merged, keyword)
	}
	return Marker + " " + strings.Join(merged, " ")
}
