// Package formula builds concrete model formulas from a wildcard template.
// A template is validated exactly once at construction; rendering a variable
// into it is a pure string substitution with no re-parsing per variable.
package formula

import (
	"strings"

	"regsweep/pkg/errors"
)

// Wildcard is the token substituted by each candidate variable's name.
const Wildcard = "[*]"

// Template is a model formula containing the wildcard exactly once, for
// example "y ~ [*] + age + sex".
type Template struct {
	raw    string
	prefix string
	suffix string
}

// NewTemplate validates s and returns a Template. The wildcard must occur
// exactly once; zero or repeated occurrences are a configuration error.
func NewTemplate(s string) (*Template, error) {
	switch n := strings.Count(s, Wildcard); {
	case n == 0:
		return nil, errors.NewConfigurationError("formula",
			"template must contain the wildcard "+Wildcard+" exactly once, none found", s)
	case n > 1:
		return nil, errors.NewConfigurationError("formula",
			"template must contain the wildcard "+Wildcard+" exactly once", s)
	}

	i := strings.Index(s, Wildcard)
	return &Template{
		raw:    s,
		prefix: s[:i],
		suffix: s[i+len(Wildcard):],
	}, nil
}

// Render substitutes the variable name for the wildcard.
func (t *Template) Render(variable string) string {
	return t.prefix + variable + t.suffix
}

// String returns the raw template text.
func (t *Template) String() string {
	return t.raw
}
