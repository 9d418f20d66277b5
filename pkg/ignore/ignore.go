// Package ignore filters acknowledged issues out of a result stream.
//
// The index is rebuilt once per run from the flat ignore set and partitions
// contextual entries by file, and within a file by the presence of a line
// number, so filtering is O(issue count) instead of a linear scan over the
// whole ignore list per issue.
package ignore

import (
	"strings"

	"github.com/yaklabco/prosecheck/pkg/config"
	"github.com/yaklabco/prosecheck/pkg/text"
)

// entry is one contextual acknowledgement with its specimen pre-lowercased.
type entry struct {
	specimen string
	check    string
}

// fileEntries holds all contextual entries for a single file.
type fileEntries struct {
	// byLine holds entries restricted to a specific line number.
	byLine map[int][]entry

	// fileWide holds entries that match any line in the file.
	fileWide []entry
}

// Index is a derived, read-only lookup structure over an IgnoreSet.
type Index struct {
	simple     map[string]struct{}
	contextual map[string]*fileEntries
}

// Build constructs the index. A nil or empty set yields an index that
// matches nothing.
func Build(set *config.IgnoreSet) *Index {
	idx := &Index{
		simple:     make(map[string]struct{}),
		contextual: make(map[string]*fileEntries),
	}
	if set == nil {
		return idx
	}

	for _, s := range set.Ignore {
		idx.simple[strings.ToLower(s)] = struct{}{}
	}

	for _, ci := range set.IgnoreIssues {
		fe := idx.contextual[ci.File]
		if fe == nil {
			fe = &fileEntries{byLine: make(map[int][]entry)}
			idx.contextual[ci.File] = fe
		}

		e := entry{specimen: strings.ToLower(ci.Specimen), check: ci.Check}
		if ci.LineNum > 0 {
			fe.byLine[ci.LineNum] = append(fe.byLine[ci.LineNum], e)
		} else {
			fe.fileWide = append(fe.fileWide, e)
		}
	}
	return idx
}

// Ignored reports whether the issue is acknowledged, either by a simple
// global specimen match or by a contextual entry for its file.
func (idx *Index) Ignored(issue text.Issue) bool {
	specimen := strings.ToLower(issue.Specimen)

	if _, ok := idx.simple[specimen]; ok {
		return true
	}

	fe, ok := idx.contextual[issue.File]
	if !ok {
		return false
	}

	for _, e := range fe.byLine[issue.LineNum] {
		if e.matches(specimen, issue.Check) {
			return true
		}
	}
	for _, e := range fe.fileWide {
		if e.matches(specimen, issue.Check) {
			return true
		}
	}
	return false
}

func (e entry) matches(specimen, check string) bool {
	if e.specimen != specimen {
		return false
	}
	return e.check == "" || e.check == check
}

// Filter returns the issues not acknowledged by the index, preserving
// order. The input slice is never mutated.
func Filter(issues []text.Issue, idx *Index) []text.Issue {
	if idx == nil || len(issues) == 0 {
		return issues
	}

	kept := make([]text.Issue, 0, len(issues))
	for _, issue := range issues {
		if !idx.Ignored(issue) {
			kept = append(kept, issue)
		}
	}
	return kept
}
