// Package paramname parses request parameter names such as "foo[1].bar" or
// "map['key']" into a stripped property path and the index/key tokens that
// were attached to each path segment.
package paramname

import (
	"cmp"
	"errors"
	"regexp"
	"slices"
	"strings"
)

// pattern matches every non-greedy bracket group. Bracket content is opaque.
var pattern = regexp.MustCompile(`\[.*?\]`)

// ErrParse is part of the binding error taxonomy. Parse never returns it:
// every input string is a valid parameter name.
var ErrParse = errors.New("parameter name cannot be parsed")

// Name is an immutable, parsed request parameter name.
type Name struct {
	raw      string
	stripped string
	indexed  bool
	segments []Segment
}

// Segment is one dot-delimited step of a parameter name with the raw
// bracket tokens that followed it, e.g. "matrix[0][1]" -> {matrix, [0 1]}.
type Segment struct {
	Name string
	Keys []string
}

// IsIndexed reports whether the segment carries at least one index or key.
func (s Segment) IsIndexed() bool {
	return len(s.Keys) > 0
}

// String renders the segment back in request syntax.
func (s Segment) String() string {
	var b strings.Builder

	b.WriteString(s.Name)

	for _, k := range s.Keys {
		b.WriteByte('[')
		b.WriteString(k)
		b.WriteByte(']')
	}

	return b.String()
}

// Parse builds a Name from a raw request parameter name. It always succeeds.
func Parse(raw string) Name {
	locs := pattern.FindAllStringIndex(raw, -1)

	n := Name{
		raw:      raw,
		stripped: raw,
		indexed:  len(locs) > 0,
	}

	if n.indexed {
		n.stripped = pattern.ReplaceAllString(raw, "")
	}

	n.segments = split(raw, locs)

	return n
}

// split walks the raw name once, cutting names on dots outside bracket
// groups and attaching each group's content to the segment it follows.
func split(raw string, locs [][]int) []Segment {
	var (
		segments []Segment
		current  Segment
		name     strings.Builder
	)

	flush := func() {
		current.Name = name.String()
		segments = append(segments, current)
		current = Segment{}
		name.Reset()
	}

	plain := func(s string) {
		for i := range len(s) {
			if s[i] == '.' {
				flush()
				continue
			}

			name.WriteByte(s[i])
		}
	}

	pos := 0
	for _, loc := range locs {
		plain(raw[pos:loc[0]])
		current.Keys = append(current.Keys, raw[loc[0]+1:loc[1]-1])
		pos = loc[1]
	}

	plain(raw[pos:])
	flush()

	return segments
}

// Raw returns the name exactly as it appeared in the request.
func (n Name) Raw() string { return n.raw }

// Stripped returns the name with every bracket group removed, e.g.
// "foo[1].bar" -> "foo.bar".
func (n Name) Stripped() string { return n.stripped }

// IsIndexed reports whether the raw name contains any bracket group.
func (n Name) IsIndexed() bool { return n.indexed }

// Segments returns the property path. The returned slice must not be modified.
func (n Name) Segments() []Segment { return n.segments }

// String returns the raw name, which is what log output should show.
func (n Name) String() string { return n.raw }

// Compare orders names so that shorter raw names come first; names of equal
// length are ordered lexicographically.
func Compare(a, b Name) int {
	if c := cmp.Compare(len(a.raw), len(b.raw)); c != 0 {
		return c
	}

	return strings.Compare(a.raw, b.raw)
}

// Compare is the method form of the package level Compare.
func (n Name) Compare(other Name) int {
	return Compare(n, other)
}

// Equal reports whether both names have the same raw form.
func (n Name) Equal(other Name) bool {
	return Compare(n, other) == 0
}

// Sort orders names in place using Compare.
func Sort(names []Name) {
	slices.SortFunc(names, Compare)
}

// ParseAll parses every raw name and returns the result sorted and without
// duplicates.
func ParseAll(raws []string) []Name {
	names := make([]Name, 0, len(raws))
	for _, raw := range raws {
		names = append(names, Parse(raw))
	}

	return Dedupe(names)
}

// Dedupe sorts names and removes duplicates in place.
func Dedupe(names []Name) []Name {
	Sort(names)

	return slices.CompactFunc(names, Name.Equal)
}
