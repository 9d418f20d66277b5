package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/prosecheck/pkg/config"
)

// envVarPrefix is the prefix for all prosecheck environment variables.
const envVarPrefix = "PROSECHECK_"

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with PROSECHECK_ (e.g., PROSECHECK_OUTPUT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if v := os.Getenv(envVarPrefix + "OUTPUT"); v != "" {
		cfg.Output = config.OutputFormat(v)
	}

	if v := os.Getenv(envVarPrefix + "CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}

	if v := os.Getenv(envVarPrefix + "NO_CACHE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sNO_CACHE: %q (expected true/false/1/0)", envVarPrefix, v)
		}
		cfg.NoCache = b
	}

	if v := os.Getenv(envVarPrefix + "STRIP_QUOTES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sSTRIP_QUOTES: %q (expected true/false/1/0)", envVarPrefix, v)
		}
		cfg.StripQuotes = b
	}

	if v := os.Getenv(envVarPrefix + "JOBS"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sJOBS: %q", envVarPrefix, v)
		}
		cfg.Jobs = i
	}

	if v := os.Getenv(envVarPrefix + "MAX_FILE_BYTES"); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %sMAX_FILE_BYTES: %q", envVarPrefix, v)
		}
		cfg.MaxFileBytes = i
	}

	if v := os.Getenv(envVarPrefix + "EXTENSIONS"); v != "" {
		cfg.Extensions = parseSliceValue(v)
	}

	if v := os.Getenv(envVarPrefix + "EXCLUDE"); v != "" {
		cfg.ExcludeGlobs = parseSliceValue(v)
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns all supported environment variables with their
// descriptions, for help output.
func ListEnvVars() map[string]string {
	return map[string]string{
		"PROSECHECK_OUTPUT":         "Output format: text, json, or verbose",
		"PROSECHECK_CACHE_DIR":      "Cache directory override",
		"PROSECHECK_NO_CACHE":       "Disable the result cache: true or false",
		"PROSECHECK_STRIP_QUOTES":   "Neutralize blockquoted text: true or false",
		"PROSECHECK_JOBS":           "Number of parallel workers (0 = auto)",
		"PROSECHECK_MAX_FILE_BYTES": "File-size cutoff in bytes (0 = default)",
		"PROSECHECK_EXTENSIONS":     "Comma-separated list of prose file extensions",
		"PROSECHECK_EXCLUDE":        "Comma-separated list of exclude glob patterns",
	}
}
