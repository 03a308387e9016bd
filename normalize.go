package gettext

import (
	"regexp"
	"strings"
)

// Normalizer canonicalises message strings so that catalog text can be
// compared with strings coming from other resource formats.
//
// A Normalizer is immutable once built and safe for concurrent use.
type Normalizer struct {
	apostrophes *strings.Replacer
	parameters  *regexp.Regexp
}

// NewNormalizer builds a Normalizer that folds typographic apostrophes into
// ASCII ones and strips the names of %(name) placeholders.
func NewNormalizer() *Normalizer {
	// Adjacent groups collapse together so that "%(a)(b)" cannot
	// reduce to a new "%(b)" match on a second pass.
	return &Normalizer{
		apostrophes: strings.NewReplacer("’", "'"),
		parameters:  regexp.MustCompile(`%(?:\([^)]*\))+`),
	}
}

// Normalize returns the comparable form of s.
func (n *Normalizer) Normalize(s string) string {
	s = n.apostrophes.Replace(s)
	// Keep the placeholder position, drop its name
	return n.parameters.ReplaceAllLiteralString(s, "%")
}

var defaultNormalizer = NewNormalizer()

// Normalize applies the default Normalizer to s.
func Normalize(s string) string {
	return defaultNormalizer.Normalize(s)
}
