// Package words holds small helpers shared by the solver's public
// packages: the textual literal formats accepted by expr.Data, and a
// membership-set abstraction used by the search engine's parameter sets.
//
// It plays the role the teacher's internal/subtle package plays for
// lwcrypto's ciphers: narrowly-scoped helpers too small to be their own
// top-level package, kept unexported from the module's public surface.
package words

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexSpace parses whitespace-separated hexadecimal groups, e.g.
// "41 a4 1f 10", into a word sequence. Each group is parsed independently,
// so groups need not be the same width.
func ParseHexSpace(s string) ([]uint64, error) {
	fields := strings.Fields(s)
	out := make([]uint64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("words: invalid hex group %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// FromIntegers copies a pre-parsed sequence of integers into a word
// sequence. It exists so call sites that already hold []int (the common
// case when literals are built programmatically) don't need a manual
// conversion loop.
func FromIntegers(vs []int) []uint64 {
	out := make([]uint64, len(vs))
	for i, v := range vs {
		out[i] = uint64(v)
	}
	return out
}

// ParseRawBytes takes each code unit of s as a word, in the order they
// appear.
func ParseRawBytes(s string) []uint64 {
	out := make([]uint64, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, uint64(s[i]))
	}
	return out
}
