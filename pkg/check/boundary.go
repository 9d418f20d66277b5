package check

import (
	"regexp"
	"strings"
	"sync"
)

// linkMarkers are the characters that introduce markdown/org link text and
// heading markers. A specimen match immediately preceded by one of these is
// not flagged, so link targets and heading syntax stay clean. The exact set
// is load-bearing; do not generalize it.
const linkMarkers = "[#-_"

// boundaryExpr builds one alternation over all specimens, anchored at word
// boundaries. RE2 has no lookbehind, so the link-marker exclusion is applied
// after matching (see findGuarded).
func boundaryExpr(specimens []string, caseSensitive bool) string {
	quoted := make([]string, len(specimens))
	for i, s := range specimens {
		quoted[i] = regexp.QuoteMeta(s)
	}

	expr := `\b(?:` + strings.Join(quoted, "|") + `)\b`
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	return expr
}

// findGuarded returns the [start, end) pairs of all matches of re in s whose
// preceding byte is not a link marker.
func findGuarded(re *regexp.Regexp, s string) [][]int {
	matches := re.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return nil
	}

	guarded := matches[:0]
	for _, m := range matches {
		if m[0] > 0 && strings.IndexByte(linkMarkers, s[m[0]-1]) >= 0 {
			continue
		}
		guarded = append(guarded, m)
	}
	return guarded
}

// patternCache compiles expressions once and shares the result across lines
// and worker goroutines. Failed compilations are cached too, so a malformed
// expression is reported once instead of once per line.
type patternCache struct {
	mu       sync.Mutex
	compiled map[string]*regexp.Regexp
	failed   map[string]error
}

func newPatternCache() *patternCache {
	return &patternCache{
		compiled: make(map[string]*regexp.Regexp),
		failed:   make(map[string]error),
	}
}

// compile returns the compiled expression. firstFailure is true only on the
// call that discovers a malformed expression, so the caller can warn exactly
// once.
func (pc *patternCache) compile(expr string) (re *regexp.Regexp, firstFailure bool, err error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if re, ok := pc.compiled[expr]; ok {
		return re, false, nil
	}
	if err, ok := pc.failed[expr]; ok {
		return nil, false, err
	}

	re, err = regexp.Compile(expr)
	if err != nil {
		pc.failed[expr] = err
		return nil, true, err
	}
	pc.compiled[expr] = re
	return re, false, nil
}
