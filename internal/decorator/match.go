package decorator

import "regexp"

// Match is one hit of a strategy. Offsets are byte offsets into the full
// input text that was scanned; End is exclusive.
type Match struct {
	Start int
	End   int
	Text  string

	// Groups holds the full match at index 0 followed by capture groups.
	// Groups that did not participate are "".
	Groups []string

	src string
	loc []int
}

// Group returns capture group i, or "" when out of range.
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.Groups) {
		return ""
	}
	return m.Groups[i]
}

// Expand interpolates $1, ${name} style references in template using this
// match. re must be the pattern that produced the match.
func (m Match) Expand(re *regexp.Regexp, template string) string {
	if m.loc == nil {
		return template
	}
	return string(re.ExpandString(nil, template, m.src, m.loc))
}

// Scan returns the non-overlapping, leftmost-first matches of pattern in
// text, ordered by start offset. Each search resumes where the previous
// match ended, so a pattern that can match the empty string would never
// advance: Scan rejects it with a NON_ADVANCING_PATTERN error.
func Scan(pattern *regexp.Regexp, text string) ([]Match, error) {
	if pattern == nil {
		return nil, newMalformedError("", -1, "strategy is required")
	}

	locs := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil, nil
	}

	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		if loc[0] == loc[1] {
			return nil, newNonAdvancingError(pattern.String(), loc[0])
		}
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = text[loc[2*i]:loc[2*i+1]]
			}
		}
		matches = append(matches, Match{
			Start:  loc[0],
			End:    loc[1],
			Text:   groups[0],
			Groups: groups,
			src:    text,
			loc:    loc,
		})
	}
	return matches, nil
}
