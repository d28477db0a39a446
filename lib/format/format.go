/*package format handles the miniature sequence language used to pick rows out
of point files, e.g:

   Rows = 0..100 - 63 - 10..20

Sequence formats are a generic way to specify non-contiguous sequences of
natural numbers. They consist of a series of tokens separated by "+" or "-".
Each token can be either a number or two numbers separated by "..", which
includes both ends. E.g.:

  100
  0..100
  0..10 + 100
  0..100 - 63 - 10..20

These strings build up sequences of numbers by adding/removing individual
numbers and contiguous sequences. For example, 1, 2, 3, 15, 16, 17 could be
written as 1..17 - 4..14. This is useful for skipping bad rows in a point
file or only looking at a handful of centers.

A leading "+" may be dropped. All spaces around "-" and "+" are ignored. All
additions are applied before any removals.
*/
package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// Any expanded formats which would have more than BigNumber elements are
	// assumed to be bugs.
	BigNumber = 1 << 20
)

// span is a single parsed token of a sequence format: the inclusive range
// [lo, hi], and whether it is added to or removed from the sequence.
type span struct {
	lo, hi int
	remove bool
}

// ExpandSequenceFormat expands a sequence format string into a sorted sequence
// of integers.
func ExpandSequenceFormat(format string) ([]int, error) {
	tok, err := tokeniseSequenceFormat(format)
	if err != nil {
		return nil, err
	}
	spans, err := parseSequenceFormat(tok)
	if err != nil {
		return nil, err
	}

	// Check sizes up front so that "0..1000000000" fails instead of eating
	// all the memory on the machine.
	total := 0
	for _, s := range spans {
		if !s.remove {
			total += s.hi - s.lo + 1
		}
		if total > BigNumber {
			return nil, fmt.Errorf("This sequence would have more than %d "+
				"elements, which is almost certainly a bug.", BigNumber)
		}
	}

	set := map[int]bool{}
	for _, s := range spans {
		if s.remove {
			continue
		}
		for n := s.lo; n <= s.hi; n++ {
			if set[n] {
				return nil, fmt.Errorf("The number %d is added more "+
					"than once.", n)
			}
			set[n] = true
		}
	}

	for _, s := range spans {
		if !s.remove {
			continue
		}
		for n := s.lo; n <= s.hi; n++ {
			if !set[n] {
				return nil, fmt.Errorf("The number %d is removed more "+
					"times than it was added.", n)
			}
			delete(set, n)
		}
	}

	out := make([]int, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)

	return out, nil
}

// Rows expands format into a list of row indices for a file with n rows. An
// empty or all-space format selects every row. Rows outside [0, n) are an
// error.
func Rows(format string, n int) ([]int, error) {
	if strings.TrimSpace(format) == "" {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		return rows, nil
	}

	rows, err := ExpandSequenceFormat(format)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && (rows[0] < 0 || rows[len(rows)-1] >= n) {
		return nil, fmt.Errorf("The rows '%s' go from %d to %d, but there "+
			"are only %d rows.", format, rows[0], rows[len(rows)-1], n)
	}
	return rows, nil
}

// tokeniseSequenceFormat splits a sequence format into numbers, ranges, and
// the "+"/"-" operators between them.
func tokeniseSequenceFormat(format string) ([]string, error) {
	clean := strings.ReplaceAll(format, "+", " + ")
	clean = strings.ReplaceAll(clean, "-", " - ")

	tok := strings.Fields(clean)
	if len(tok) == 0 {
		return nil, fmt.Errorf("The format string is empty.")
	}
	return tok, nil
}

// parseSequenceFormat turns a tokenised sequence format into spans. Error
// messages count tokens from one.
func parseSequenceFormat(tok []string) ([]span, error) {
	if len(tok) == 0 {
		return nil, fmt.Errorf("The format string is empty.")
	}

	spans := []span{}
	start := 0
	if tok[0] != "+" && tok[0] != "-" {
		s, err := parseSequenceFormatToken(tok[0])
		if err != nil {
			return nil, fmt.Errorf("Element number 1, '%s', cannot be "+
				"parsed because %s", tok[0], err.Error())
		}
		spans = append(spans, s)
		start = 1
	}

	for i := start; i < len(tok); i += 2 {
		if tok[i] != "-" && tok[i] != "+" {
			return nil, fmt.Errorf("Element number %d, '%s', should be a "+
				"'-' or '+', but isn't.", i+1, tok[i])
		}
		if i+1 >= len(tok) {
			return nil, fmt.Errorf("The format string ends in a "+
				"trailing '%s'.", tok[i])
		}

		s, err := parseSequenceFormatToken(tok[i+1])
		if err != nil {
			return nil, fmt.Errorf("Element number %d, '%s', cannot be "+
				"parsed because %s", i+2, tok[i+1], err.Error())
		}
		s.remove = tok[i] == "-"
		spans = append(spans, s)
	}

	return spans, nil
}

// parseSequenceFormatToken parses a single number or "lo..hi" range. The
// error message assumes it is printed after a trailing "because".
func parseSequenceFormatToken(tok string) (span, error) {
	if len(tok) == 0 {
		return span{}, fmt.Errorf("the token is empty.")
	}

	bounds := strings.Split(tok, "..")
	switch len(bounds) {
	case 1:
		n, err := strconv.Atoi(bounds[0])
		if err != nil {
			return span{}, fmt.Errorf("'%s' is not an integer.", bounds[0])
		}
		return span{lo: n, hi: n}, nil
	case 2:
		lo, err := strconv.Atoi(bounds[0])
		if err != nil {
			return span{}, fmt.Errorf("'%s' is not an integer.", bounds[0])
		}
		hi, err := strconv.Atoi(bounds[1])
		if err != nil {
			return span{}, fmt.Errorf("'%s' is not an integer.", bounds[1])
		}
		if hi < lo {
			return span{}, fmt.Errorf("lower bound %d is larger than upper "+
				"bound %d.", lo, hi)
		}
		return span{lo: lo, hi: hi}, nil
	}
	return span{}, fmt.Errorf("it has more than one '..'.")
}
