package result

import (
	"strings"

	"regsweep/family"
)

// Filter removes rows whose term the caller excluded and, when
// excludeIntercept is set, the intercept rows. An excluded name matches both
// the exact term and any term it prefixes, so excluding "sex" also drops the
// factor-expanded "sexMale". Filtering runs after normalization and before
// multiple-testing correction so the corrected p-value set matches exactly
// the retained rows. Fit-failure placeholder rows have no term and are never
// removed here.
func Filter(rows []Row, excludeTerms []string, excludeIntercept bool) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Flag == FlagFitFailed {
			out = append(out, row)
			continue
		}
		if excludeIntercept && row.Term == family.InterceptTerm {
			continue
		}
		if excludedTerm(row.Term, excludeTerms) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func excludedTerm(term string, excludeTerms []string) bool {
	for _, name := range excludeTerms {
		if strings.HasPrefix(term, name) {
			return true
		}
	}
	return false
}
