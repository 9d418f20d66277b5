package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	enry "github.com/go-enry/go-enry/v2"
	"github.com/gobwas/glob"

	"github.com/yaklabco/prosecheck/pkg/config"
)

// binarySniffLen is how many leading bytes are sampled to detect binary
// content before a file is accepted.
const binarySniffLen = 512

// Discover finds prose files matching opts under the working directory.
// Vendored paths and binary files are skipped. It returns a
// deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	extensions := cfg.EffectiveExtensions()

	excludes, err := compileExcludes(cfg.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			discovered, err := walkDirectory(ctx, absPath, workDir, extensions, excludes)
			if err != nil {
				return nil, err
			}
			for _, f := range discovered {
				if _, ok := seen[f]; !ok {
					seen[f] = struct{}{}
					files = append(files, f)
				}
			}
		} else if matchesFile(absPath, workDir, extensions, excludes) {
			if _, ok := seen[absPath]; !ok {
				seen[absPath] = struct{}{}
				files = append(files, absPath)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// DisplayPath returns the path shown in issues and used as the cache
// identity: relative to the working directory with forward slashes, or
// the absolute path when the file lies outside it.
func DisplayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude glob %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func walkDirectory(ctx context.Context, dir, workDir string, extensions []string, excludes []glob.Glob) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		rel := DisplayPath(workDir, path)

		if d.IsDir() {
			// Skip hidden, vendored, and excluded directories outright.
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || enry.IsVendor(rel+"/")) {
				return filepath.SkipDir
			}
			if matchesAny(excludes, rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if matchesFile(path, workDir, extensions, excludes) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}

func matchesFile(path, workDir string, extensions []string, excludes []glob.Glob) bool {
	ext := strings.ToLower(filepath.Ext(path))
	found := false
	for _, e := range extensions {
		if ext == e {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	rel := DisplayPath(workDir, path)
	if enry.IsVendor(rel) || matchesAny(excludes, rel) {
		return false
	}

	return !isBinaryFile(path)
}

func matchesAny(excludes []glob.Glob, rel string) bool {
	for _, g := range excludes {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// isBinaryFile samples the head of the file; unreadable files are left
// for the worker to report a proper error.
func isBinaryFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, binarySniffLen)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false
	}
	return enry.IsBinary(buf[:n])
}
