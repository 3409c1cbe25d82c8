package jobs

import (
	"regexp"
	"strings"
)

// rule is one step of an extraction cascade: a pattern, an optional
// post-processor applied to the captured value, and an optional validator.
// Rules run in slice order; the first rule whose processed capture passes
// validation wins and later rules are not attempted.
type rule struct {
	re       *regexp.Regexp
	post     func(string) string
	validate func(string) bool
}

// firstMatch drives a cascade over the given text.
func firstMatch(text string, rules []rule) (string, bool) {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := m[0]
		if len(m) > 1 {
			candidate = m[1]
		}
		candidate = strings.TrimSpace(candidate)
		if r.post != nil {
			candidate = strings.TrimSpace(r.post(candidate))
		}
		if candidate == "" {
			continue
		}
		if r.validate != nil && !r.validate(candidate) {
			continue
		}
		return candidate, true
	}
	return "", false
}

// lengthBetween returns a validator accepting values whose length is within
// [min, max] inclusive.
func lengthBetween(min, max int) func(string) bool {
	return func(s string) bool {
		return len(s) >= min && len(s) <= max
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// collapseWhitespace folds consecutive whitespace into single spaces.
func collapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// firstLines returns up to n leading lines of the original text.
func firstLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
