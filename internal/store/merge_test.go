package store

import (
	"strings"
	"testing"
)

// keywordSet parses a keyword line into its token set, verifying the
// leading marker along the way. Token order after a merge is
// implementation-defined, so tests compare sets.
func keywordSet(t *testing.T, line string) map[string]bool {
	t.Helper()
	tokens := strings.Split(line, " ")
	if len(tokens) == 0 || tokens[0] != Marker {
		t.Fatalf("keyword line %q does not start with the marker", line)
	}
	set := make(map[string]bool)
	for _, token := range tokens[1:] {
		if set[token] {
			t.Fatalf("keyword line %q has duplicate token %q", line, token)
		}
		set[token] = true
	}
	return set
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func TestMergeKeywordsUnion(t *testing.T) {
	got := keywordSet(t, MergeKeywords("# list files", "dir"))
	want := map[string]bool{"list": true, "files": true, "dir": true}
	if !sameSet(got, want) {
		t.Errorf("merged set = %v, want %v", got, want)
	}
}

func TestMergeKeywordsIdempotent(t *testing.T) {
	line := "# list files"
	got := keywordSet(t, MergeKeywords(line, "list files"))
	want := map[string]bool{"list": true, "files": true}
	if !sameSet(got, want) {
		t.Errorf("self-merge set = %v, want %v", got, want)
	}
}

func TestMergeKeywordsOrderIndependent(t *testing.T) {
	a := keywordSet(t, MergeKeywords("# a b", "c d"))
	b := keywordSet(t, MergeKeywords("# b a", "d c"))
	if !sameSet(a, b) {
		t.Errorf("merge is order dependent: %v vs %v", a, b)
	}
}

func TestMergeKeywordsMarkerOnceFirst(t *testing.T) {
	merged := MergeKeywords("# list", "dir")
	if !strings.HasPrefix(merged, Marker+" ") {
		t.Errorf("merged line %q does not start with the marker", merged)
	}
	if strings.Count(merged, Marker) != 1 {
		t.Errorf("merged line %q has %d markers, want 1", merged, strings.Count(merged, Marker))
	}
}
