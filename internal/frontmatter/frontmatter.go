// Package frontmatter extracts the key/value header block from Markdown
// content. The format is deliberately narrower than YAML: delimiters are
// lines consisting of exactly three hyphens, and each line between them is
// split on its first colon.
package frontmatter

import "strings"

const delimiter = "---"

// Pair is a single frontmatter entry.
type Pair struct {
	Key   string
	Value string
}

// Record is an ordered collection of frontmatter entries. Keys are unique:
// setting an existing key overwrites its value but keeps the position of
// the first occurrence, so table rendering stays deterministic.
type Record struct {
	pairs []Pair
	index map[string]int
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Set stores value under key. On duplicate keys the last value wins.
func (r *Record) Set(key, value string) {
	if i, ok := r.index[key]; ok {
		r.pairs[i].Value = value
		return
	}
	r.index[key] = len(r.pairs)
	r.pairs = append(r.pairs, Pair{Key: key, Value: value})
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	i, ok := r.index[key]
	if !ok {
		return "", false
	}
	return r.pairs[i].Value, true
}

// Len returns the number of entries. A nil Record has length zero.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.pairs)
}

// Pairs returns the entries in insertion order. Callers must not mutate the
// returned slice.
func (r *Record) Pairs() []Pair {
	if r == nil {
		return nil
	}
	return r.pairs
}

// Parse splits content into its frontmatter record and body.
//
// Frontmatter is present only when the first line of content is exactly
// "---" and some later line is exactly "---" (a single trailing carriage
// return is tolerated on delimiter lines for CRLF input). Between the
// delimiters, lines without a colon are skipped; the rest split on the
// first colon with surrounding whitespace trimmed from key and value. The
// body is everything after the closing delimiter with at most one leading
// blank line removed.
//
// When no frontmatter is present the record is nil and the body is content
// unchanged. An unterminated block counts as no frontmatter: the opening
// delimiter stays in the body. Parse never fails.
func Parse(content string) (*Record, string) {
	first, rest, terminated := strings.Cut(content, "\n")
	if !isDelimiter(first) || !terminated {
		return nil, content
	}

	rec := NewRecord()
	for len(rest) > 0 {
		line, after, more := strings.Cut(rest, "\n")
		if isDelimiter(line) {
			return rec, trimBlankLine(after)
		}
		parseLine(rec, line)
		if !more {
			break
		}
		rest = after
	}
	return nil, content
}

// isDelimiter reports whether line is a frontmatter fence.
func isDelimiter(line string) bool {
	return strings.TrimSuffix(line, "\r") == delimiter
}

// parseLine records one "key: value" line. Lines without a colon carry no
// pair and are ignored.
func parseLine(rec *Record, line string) {
	line = strings.TrimSuffix(line, "\r")
	key, value, found := strings.Cut(line, ":")
	if !found {
		return
	}
	rec.Set(strings.TrimSpace(key), strings.TrimSpace(value))
}

// trimBlankLine removes one leading blank line, if present.
func trimBlankLine(s string) string {
	if after, ok := strings.CutPrefix(s, "\r\n"); ok {
		return after
	}
	if after, ok := strings.CutPrefix(s, "\n"); ok {
		return after
	}
	return s
}
