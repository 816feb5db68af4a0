package lexicon

import "sort"

// TokenSet is a set of canonical lowercase tokens.
type TokenSet map[string]struct{}

// NewTokenSet returns a set holding tokens.
func NewTokenSet(tokens ...string) TokenSet {
	s := make(TokenSet, len(tokens))
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

// Add inserts token; empty tokens are ignored.
func (s TokenSet) Add(token string) {
	if token != "" {
		s[token] = struct{}{}
	}
}

// Has reports membership.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Len returns the number of tokens.
func (s TokenSet) Len() int {
	return len(s)
}

// Overlap counts the tokens of s that are also in other.
func (s TokenSet) Overlap(other TokenSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for t := range small {
		if large.Has(t) {
			n++
		}
	}
	return n
}

// Equal reports whether both sets hold the same tokens.
func (s TokenSet) Equal(other TokenSet) bool {
	if len(s) != len(other) {
		return false
	}
	for t := range s {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// Sorted returns the tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
