// Package config defines core configuration types for prosecheck.
// These types are pure data structures with no dependency on config
// discovery or the check engine.
package config

// OutputFormat specifies the output format for issues.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatVerbose OutputFormat = "verbose"
)

// IsValid returns true if the output format names a known renderer.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatVerbose:
		return true
	default:
		return false
	}
}

// DefaultMaxFileBytes is the default upstream file-size cutoff.
const DefaultMaxFileBytes int64 = 1 << 20

// Config is the resolved run configuration, excluding the check list.
// Checks are hashed and invalidated on their own channel, so the loader
// carries them separately (see configloader.LoadResult).
type Config struct {
	// Output selects the renderer ("text", "json", "verbose").
	Output OutputFormat `yaml:"output"`

	// Extensions is the set of file extensions treated as prose input,
	// lowercase with leading dot. Empty means the defaults.
	Extensions []string `yaml:"extensions,omitempty"`

	// ExcludeGlobs are glob patterns for files or directories to skip.
	ExcludeGlobs []string `yaml:"exclude,omitempty"`

	// MaxFileBytes is the file-size cutoff; larger files never reach
	// the engine. 0 means DefaultMaxFileBytes.
	MaxFileBytes int64 `yaml:"max_file_bytes,omitempty"`

	// StripQuotes controls whether blockquoted spans are neutralized in
	// addition to code spans.
	StripQuotes bool `yaml:"strip_quotes"`

	// CLI-level options (not persisted to config files and excluded
	// from the config hash).

	// CacheDir overrides the default cache directory.
	CacheDir string `yaml:"-"`

	// NoCache disables cache load/save for the run.
	NoCache bool `yaml:"-"`

	// Jobs is the maximum number of concurrent workers. 0 means auto.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Output:       FormatText,
		MaxFileBytes: DefaultMaxFileBytes,
	}
}

// EffectiveMaxFileBytes returns the file-size cutoff, defaulting if unset.
func (c *Config) EffectiveMaxFileBytes() int64 {
	if c == nil || c.MaxFileBytes <= 0 {
		return DefaultMaxFileBytes
	}
	return c.MaxFileBytes
}

// DefaultExtensions returns the default set of prose file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".txt"}
}

// EffectiveExtensions returns the extensions to use, defaulting if empty.
func (c *Config) EffectiveExtensions() []string {
	if c == nil || len(c.Extensions) == 0 {
		return DefaultExtensions()
	}
	return c.Extensions
}
