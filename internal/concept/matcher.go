// Package concept recognizes symptom concepts in reordered or partially
// translated phrasing using bounded-gap proximity rules.
package concept

import (
	"fmt"
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// Rule pairs a proximity pattern with the two concept tokens it contributes.
type Rule struct {
	Name   string
	Tokens [2]string
	expr   *regexp.Regexp
}

// NewRule compiles pattern (NFC-normalized first so it lines up with normalized input).
func NewRule(name, pattern, first, second string) (Rule, error) {
	expr, err := regexp.Compile(norm.NFC.String(pattern))
	if err != nil {
		return Rule{}, fmt.Errorf("compile concept rule %q: %w", name, err)
	}
	return Rule{Name: name, Tokens: [2]string{first, second}, expr: expr}, nil
}

// MustRule is NewRule for static tables; it panics on an invalid pattern.
func MustRule(name, pattern, first, second string) Rule {
	r, err := NewRule(name, pattern, first, second)
	if err != nil {
		panic(err)
	}
	return r
}

// Matches reports whether the rule fires anywhere in text.
func (r Rule) Matches(text string) bool {
	return r.expr != nil && r.expr.MatchString(text)
}

// Gaps are counted in runes: "." in Go regexp consumes one UTF-8 code point.
var defaultRules = []Rule{
	MustRule("hi-smell-loss", `(सूंघ|सूँघ|गंध|महक|खुशबू).{0,18}(कमी|कम|घट|नहीं)`, "loss", "smell"),
	MustRule("hi-loss-smell", `(कमी|कम|घट|नहीं).{0,18}(सूंघ|सूँघ|गंध|महक|खुशबू)`, "loss", "smell"),
	MustRule("gu-smell-loss", `(સુગંધ|વાસ|ઘ્રાણ).{0,18}(કમી|ઓછી|ઘટ)`, "loss", "smell"),
	MustRule("gu-loss-smell", `(કમી|ઓછી|ઘટ).{0,18}(સુગંધ|વાસ|ઘ્રાણ)`, "loss", "smell"),
	MustRule("latn-smell-loss", `(soongh|sung|smell).{0,18}(kam|loss|less|gone|reduc)`, "loss", "smell"),
	MustRule("latn-loss-smell", `(kam|loss|less|gone|reduc).{0,18}(soongh|sung|smell)`, "loss", "smell"),
	MustRule("hi-dry-cough", `(सूख|dry).{0,10}(खांसी|कासी|khansi|cough)`, "dry", "cough"),
	MustRule("gu-cough-dry", `(ખાંસી|cough).{0,10}(સૂકી|dry)`, "dry", "cough"),
}

// DefaultRules returns a copy of the built-in rule table.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}

// Matcher evaluates every rule against a text. It is immutable and safe for
// concurrent use.
type Matcher struct {
	rules []Rule
}

// NewMatcher returns a matcher over rules, or over the built-in table when
// none are given.
func NewMatcher(rules ...Rule) *Matcher {
	if len(rules) == 0 {
		rules = defaultRules
	}
	return &Matcher{rules: append([]Rule(nil), rules...)}
}

// Match returns the concept tokens of every rule that fires on text, in rule
// order. Rules do not short-circuit each other. text is expected lowercased.
func (m *Matcher) Match(text string) []string {
	if text == "" {
		return nil
	}
	var tokens []string
	for _, r := range m.rules {
		if r.Matches(text) {
			tokens = append(tokens, r.Tokens[0], r.Tokens[1])
		}
	}
	return tokens
}

// Fired returns the names of the rules that fire on text.
func (m *Matcher) Fired(text string) []string {
	var names []string
	for _, r := range m.rules {
		if r.Matches(text) {
			names = append(names, r.Name)
		}
	}
	return names
}

// Len returns the number of rules.
func (m *Matcher) Len() int {
	return len(m.rules)
}
