package formula

import (
	"strings"

	"regsweep/pkg/errors"
)

// Formula is a parsed additive model formula of the form
// "response ~ term1 + term2". The built-in fitters understand this grammar;
// external fit functions are free to interpret the rendered string however
// their formula grammar requires.
type Formula struct {
	Response string
	Terms    []string
}

// Parse splits a rendered formula into its response and additive terms.
// A bare "1" on the right-hand side denotes the intercept-only model and
// contributes no term.
func Parse(s string) (*Formula, error) {
	parts := strings.SplitN(s, "~", 2)
	if len(parts) != 2 {
		return nil, errors.Newf("formula %q: expected 'response ~ terms'", s)
	}

	response := strings.TrimSpace(parts[0])
	if response == "" {
		return nil, errors.Newf("formula %q: empty response", s)
	}

	var terms []string
	for _, t := range strings.Split(parts[1], "+") {
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, errors.Newf("formula %q: empty term", s)
		}
		if t == "1" {
			continue
		}
		terms = append(terms, t)
	}

	return &Formula{Response: response, Terms: terms}, nil
}
