package config

// ContextualIgnore acknowledges one issue in a specific context. LineNum
// and Check are optional refinements: a zero LineNum matches any line in
// the file, an empty Check matches any check.
type ContextualIgnore struct {
	File     string `yaml:"file"`
	LineNum  int    `yaml:"line,omitempty"`
	Specimen string `yaml:"specimen"`
	Check    string `yaml:"check,omitempty"`
}

// IgnoreSet holds acknowledged issues, merged across config sources by the
// loader. It is constant for the duration of one run.
type IgnoreSet struct {
	// Ignore lists specimens ignored everywhere, matched case-insensitively.
	Ignore []string `yaml:"ignore,omitempty"`

	// IgnoreIssues lists context-specific acknowledgements.
	IgnoreIssues []ContextualIgnore `yaml:"ignore_issues,omitempty"`
}

// IsEmpty reports whether the set contains no entries at all.
func (s *IgnoreSet) IsEmpty() bool {
	return s == nil || (len(s.Ignore) == 0 && len(s.IgnoreIssues) == 0)
}
