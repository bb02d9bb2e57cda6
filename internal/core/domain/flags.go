package domain

import (
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Flags is an ordered, mutable list of command-line tokens.
//
// Order is significant: tokens are handed to a tool exactly in the order they
// were added. The zero value is ready to use.
type Flags struct {
	tokens []string
}

// NewFlags creates a flag set from the given tokens.
func NewFlags(tokens ...string) *Flags {
	f := &Flags{}
	f.Add(tokens...)
	return f
}

// Add appends tokens to the end of the flag set.
func (f *Flags) Add(tokens ...string) {
	f.tokens = append(f.tokens, tokens...)
}

// List returns a copy of the tokens in order.
func (f *Flags) List() []string {
	return slices.Clone(f.tokens)
}

// Len returns the number of tokens.
func (f *Flags) Len() int {
	return len(f.tokens)
}

// Contains reports whether the exact token is present.
func (f *Flags) Contains(token string) bool {
	return slices.Contains(f.tokens, token)
}

// Remove strips every occurrence of flag from the set and returns the number
// of occurrences removed. With hasParameter set, a token exactly equal to
// flag consumes the following token as its parameter, and a token with flag
// as prefix (e.g. "-Jdir" for flag "-J") is removed on its own.
func (f *Flags) Remove(flag string, hasParameter bool) int {
	removed := 0
	kept := f.tokens[:0]
	for i := 0; i < len(f.tokens); i++ {
		token := f.tokens[i]
		if token == flag {
			removed++
			if hasParameter && i+1 < len(f.tokens) {
				i++
			}
			continue
		}
		if hasParameter && strings.HasPrefix(token, flag) {
			removed++
			continue
		}
		kept = append(kept, token)
	}
	f.tokens = kept
	return removed
}

// Checksum returns a deterministic hash over the tokens in order.
// NUL separators keep adjacent tokens from colliding ("ab","c" vs "a","bc").
func (f *Flags) Checksum() uint64 {
	h := xxhash.New()
	for _, token := range f.tokens {
		_, _ = h.WriteString(token)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// String renders the tokens space-separated, for diagnostics only.
func (f *Flags) String() string {
	return strings.Join(f.tokens, " ")
}
