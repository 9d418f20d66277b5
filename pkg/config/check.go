package config

// Kind is the tag selecting which matching algorithm a Check uses.
type Kind string

// Built-in check kinds.
const (
	KindExistence       Kind = "existence"
	KindCase            Kind = "case"
	KindRecommender     Kind = "recommender"
	KindCaseRecommender Kind = "case-recommender"
	KindRepetition      Kind = "repetition"
	KindRegex           Kind = "regex"
)

// Recommendation is one {prefer, avoid} pair for recommender checks.
type Recommendation struct {
	Prefer string `yaml:"prefer"`
	Avoid  string `yaml:"avoid"`
}

// Expression is one {pattern, message} pair for regex checks.
type Expression struct {
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`
}

// Check is one configured rule. The fields used vary by kind:
//
//   - existence / case: Specimens and Message
//   - recommender / case-recommender: Recommendations and Message
//   - repetition: no configuration fields
//   - regex: Expressions
//
// Shape validation happens at load time in configloader; the matching
// engine assumes the per-kind fields are present.
type Check struct {
	Name            string           `yaml:"name"`
	Kind            Kind             `yaml:"kind"`
	Message         string           `yaml:"message,omitempty"`
	Specimens       []string         `yaml:"specimens,omitempty"`
	Recommendations []Recommendation `yaml:"recommendations,omitempty"`
	Expressions     []Expression     `yaml:"expressions,omitempty"`
}
