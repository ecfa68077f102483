package store

import (
	"fmt"
	"strings"
)

// FindMatches scans every line and collects, for each keyword line
// containing any of the search keywords, the index of its paired
// command line, in store order. Matching is substring containment on
// the whole keyword line, so "foo" also matches a line carrying
// "foobar".
func FindMatches(lines []string, keywords []string) ([]int, error) {
	var matches []int
	for i, line := range lines {
		if !strings.HasPrefix(line, Marker) {
			continue
		}
		for _, keyword := range keywords {
			if strings.Contains(line, keyword) {
				if i+1 >= len(lines) {
					return nil, fmt.Errorf("%w: keyword line %d has no command line", ErrMalformedStore, i)
				}
				matches = append(matches, i+1)
				break
			}
		}
	}
	return matches, nil
}
