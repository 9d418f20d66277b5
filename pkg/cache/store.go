package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/prosecheck/pkg/fsutil"
	"github.com/yaklabco/prosecheck/pkg/stablehash"
)

// Sentinel errors distinguishing cache outcomes. Callers treat both as a
// reason to recompute, but a corrupted record is worth logging while a
// plain miss is not.
var (
	// ErrCacheMiss indicates no record exists for the file.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCorruptedCache indicates a record exists but fails to parse.
	ErrCorruptedCache = errors.New("corrupted cache record")
)

// Store reads and writes per-file cache records under a single directory,
// one YAML record per distinct file identity. Records are keyed by
// stablehash of the file identity, not the raw path, so keys are
// filesystem-safe and stable across path representations.
type Store struct {
	dir string
}

// DefaultDir returns the standard cache location following XDG conventions:
// $XDG_CACHE_HOME/prosecheck, falling back to ~/.cache/prosecheck.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "prosecheck"), nil
}

// Open ensures the cache directory exists and returns a store over it.
// An empty dir selects DefaultDir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// pathFor maps a file identity to its record path.
func (s *Store) pathFor(file string) string {
	return filepath.Join(s.dir, stablehash.Key(stablehash.HashString(file))+".yaml")
}

// Load reads the cache record for the given file identity. It returns
// ErrCacheMiss when no record exists and ErrCorruptedCache when a record
// exists but cannot be parsed; both leave the caller free to recompute.
func (s *Store) Load(file string) (*Result, error) {
	data, err := os.ReadFile(s.pathFor(file))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("read cache record: %w", err)
	}

	var result Result
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedCache, err)
	}
	return &result, nil
}

// Save persists a record for the given file identity. The write is atomic:
// a failure never leaves a half-written record at the canonical path, and
// concurrent writers for the same key resolve to the last completed rename.
func (s *Store) Save(ctx context.Context, file string, result *Result) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, s.pathFor(file), data, 0); err != nil {
		return fmt.Errorf("save cache record: %w", err)
	}
	return nil
}
