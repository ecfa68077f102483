package store

import (
	"fmt"
	"strings"
)

// Marker is the token that opens every keyword line. It is never
// itself a keyword.
const Marker = "#"

// Record is a keyword line and its paired command line.
type Record struct {
	Keywords string // full keyword line, including the leading marker
	Command  string
}

// ParseLines splits the raw store text into its line sequence. The
// store is written with a single trailing newline, which does not
// count as a line of its own; empty text parses to zero lines.
func ParseLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// JoinLines serializes a line sequence back to the store's on-disk
// form: newline separated with a single trailing newline. Zero lines
// yield the empty string so an emptied store truncates to zero bytes.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// PairRecords pairs the line sequence into records. An odd number of
// lines means the backing file lost a line and the keyword/command
// pairing can no longer be trusted.
func PairRecords(lines []string) ([]Record, error) {
	if len(lines)%2 != 0 {
		return nil, fmt.Errorf("%w: %d lines", ErrMalformedStore, len(lines))
	}
	records := make([]Record, 0, len(lines)/2)
	for i := 0; i+1 < len(lines); i += 2 {
		records = append(records, Record{Keywords: lines[i], Command: lines[i+1]})
	}
	return records, nil
}
