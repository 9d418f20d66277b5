package configloader

import "github.com/yaklabco/prosecheck/pkg/config"

// merge combines two configuration files, with override taking precedence
// over base. The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Checks: merged by name; an override check replaces a same-named base
//     check, new names are appended in override order
//   - Ignore entries: accumulated across sources (never replaced)
//   - Other slices: override replaces base entirely if override is non-nil
func merge(base, override *config.File) *config.File {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Config.Output != "" {
		result.Config.Output = override.Config.Output
	}
	if override.Config.MaxFileBytes != 0 {
		result.Config.MaxFileBytes = override.Config.MaxFileBytes
	}
	if override.Config.CacheDir != "" {
		result.Config.CacheDir = override.Config.CacheDir
	}
	if override.Config.Jobs != 0 {
		result.Config.Jobs = override.Config.Jobs
	}

	// Booleans: false is the zero value, so a higher-precedence source can
	// set these but not unset them.
	if override.Config.StripQuotes {
		result.Config.StripQuotes = true
	}
	if override.Config.NoCache {
		result.Config.NoCache = true
	}

	// Slices: override replaces base entirely if non-nil
	if override.Config.Extensions != nil {
		result.Config.Extensions = override.Config.Extensions
	}
	if override.Config.ExcludeGlobs != nil {
		result.Config.ExcludeGlobs = override.Config.ExcludeGlobs
	}

	result.Checks = mergeChecks(base.Checks, override.Checks)

	// Ignore entries accumulate: a project acknowledging an issue must not
	// wipe out the user-level ignore list.
	result.Ignore = appendUnique(base.Ignore, override.Ignore)
	result.IgnoreIssues = append(append([]config.ContextualIgnore(nil), base.IgnoreIssues...), override.IgnoreIssues...)

	return &result
}

// mergeChecks merges check lists by name. Base order is preserved; a
// same-named override check replaces the base entry in place, and checks
// new to the override are appended in their own order.
func mergeChecks(base, override []config.Check) []config.Check {
	if len(base) == 0 {
		return append([]config.Check(nil), override...)
	}
	if len(override) == 0 {
		return append([]config.Check(nil), base...)
	}

	overrideByName := make(map[string]config.Check, len(override))
	for _, c := range override {
		overrideByName[c.Name] = c
	}

	result := make([]config.Check, 0, len(base)+len(override))
	seen := make(map[string]bool, len(base))

	for _, c := range base {
		if replacement, ok := overrideByName[c.Name]; ok {
			result = append(result, replacement)
		} else {
			result = append(result, c)
		}
		seen[c.Name] = true
	}

	for _, c := range override {
		if !seen[c.Name] {
			result = append(result, c)
		}
	}

	return result
}

// appendUnique appends the elements of extra to base, skipping duplicates.
func appendUnique(base, extra []string) []string {
	if len(extra) == 0 {
		return append([]string(nil), base...)
	}

	result := append([]string(nil), base...)
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		if !seen[s] {
			result = append(result, s)
			seen[s] = true
		}
	}
	return result
}

// MergeAll merges multiple configuration files in order, with later files
// taking precedence.
func MergeAll(files ...*config.File) *config.File {
	if len(files) == 0 {
		return nil
	}

	result := files[0]
	for i := 1; i < len(files); i++ {
		result = merge(result, files[i])
	}
	return result
}
