package store

import (
	"errors"
	"testing"
)

func TestParseJoinRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"# list files\nls -la\n",
		"# list files\nls -la\n# k8s pods\nkubectl get pods\n",
	}
	for _, text := range cases {
		if got := JoinLines(ParseLines(text)); got != text {
			t.Errorf("round trip of %q = %q", text, got)
		}
	}
}

func TestParseLinesEmpty(t *testing.T) {
	if got := ParseLines(""); len(got) != 0 {
		t.Errorf("ParseLines(\"\") = %v, want no lines", got)
	}
	// A file holding only a newline has no records either.
	if got := ParseLines("\n"); len(got) != 0 {
		t.Errorf("ParseLines(\"\\n\") = %v, want no lines", got)
	}
}

func TestJoinLinesEmpty(t *testing.T) {
	if got := JoinLines(nil); got != "" {
		t.Errorf("JoinLines(nil) = %q, want empty string", got)
	}
}

func TestJoinLinesTrailingNewline(t *testing.T) {
	got := JoinLines([]string{"# a", "b"})
	if got != "# a\nb\n" {
		t.Errorf("JoinLines = %q, want %q", got, "# a\nb\n")
	}
}

func TestPairRecords(t *testing.T) {
	records, err := PairRecords([]string{"# list files", "ls -la", "# k8s", "kubectl get pods"})
	if err != nil {
		t.Fatalf("PairRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Keywords != "# list files" || records[0].Command != "ls -la" {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].Keywords != "# k8s" || records[1].Command != "kubectl get pods" {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestPairRecordsOddLineCount(t *testing.T) {
	_, err := PairRecords([]string{"# list files", "ls -la", "# dangling"})
	if !errors.Is(err, ErrMalformedStore) {
		t.Errorf("PairRecords on odd line count: err = %v, want ErrMalformedStore", err)
	}
}
