package configloader

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/prosecheck/pkg/check"
	"github.com/yaklabco/prosecheck/pkg/config"
)

func newTestTable() *check.Table {
	return check.NewTable(log.New(io.Discard))
}

func isolatedOpts(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		Table:              newTestTable(),
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	result, err := Load(context.Background(), isolatedOpts(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Output != config.FormatText {
		t.Errorf("expected output %q, got %q", config.FormatText, result.Config.Output)
	}
	if len(result.Checks) != 0 {
		t.Errorf("expected no checks, got %d", len(result.Checks))
	}
	if !result.IgnoreSet.IsEmpty() {
		t.Error("expected empty ignore set")
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
output: json
strip_quotes: true
checks:
  - name: avoid-clearly
    kind: existence
    message: avoid hedging words
    specimens: [clearly, obviously]
ignore:
  - utilize
`
	configPath := filepath.Join(tmpDir, ".prosecheck.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	result, err := Load(context.Background(), isolatedOpts(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Output != config.FormatJSON {
		t.Errorf("expected output %q, got %q", config.FormatJSON, result.Config.Output)
	}
	if !result.Config.StripQuotes {
		t.Error("expected strip_quotes to be set")
	}
	if len(result.Checks) != 1 || result.Checks[0].Name != "avoid-clearly" {
		t.Fatalf("expected check avoid-clearly, got %+v", result.Checks)
	}
	if len(result.IgnoreSet.Ignore) != 1 || result.IgnoreSet.Ignore[0] != "utilize" {
		t.Errorf("expected ignore [utilize], got %v", result.IgnoreSet.Ignore)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	projectContent := `
output: text
checks:
  - name: shared
    kind: existence
    message: project message
    specimens: [foo]
ignore:
  - alpha
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".prosecheck.yaml"), []byte(projectContent), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	explicitContent := `
output: verbose
checks:
  - name: shared
    kind: existence
    message: explicit message
    specimens: [bar]
  - name: extra
    kind: repetition
ignore:
  - beta
`
	explicitPath := filepath.Join(tmpDir, "custom.yaml")
	if err := os.WriteFile(explicitPath, []byte(explicitContent), 0o644); err != nil {
		t.Fatalf("write explicit config: %v", err)
	}

	opts := isolatedOpts(tmpDir)
	opts.ExplicitPath = explicitPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Output != config.FormatVerbose {
		t.Errorf("expected output verbose, got %q", result.Config.Output)
	}

	// Same-named check is replaced, new check is appended.
	if len(result.Checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(result.Checks))
	}
	if result.Checks[0].Name != "shared" || result.Checks[0].Message != "explicit message" {
		t.Errorf("expected explicit shared check first, got %+v", result.Checks[0])
	}
	if result.Checks[1].Name != "extra" {
		t.Errorf("expected extra check second, got %+v", result.Checks[1])
	}

	// Ignore entries accumulate across sources.
	if len(result.IgnoreSet.Ignore) != 2 {
		t.Errorf("expected ignores from both files, got %v", result.IgnoreSet.Ignore)
	}

	if len(result.LoadedFrom) != 2 {
		t.Errorf("expected 2 loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLITakesPrecedence(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, ".prosecheck.yaml"), []byte("output: json\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	opts := isolatedOpts(tmpDir)
	opts.CLIConfig = &config.Config{Output: config.FormatVerbose, Jobs: 4}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Output != config.FormatVerbose {
		t.Errorf("expected CLI output to win, got %q", result.Config.Output)
	}
	if result.Config.Jobs != 4 {
		t.Errorf("expected jobs 4, got %d", result.Config.Jobs)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()

	t.Setenv("PROSECHECK_OUTPUT", "json")
	t.Setenv("PROSECHECK_JOBS", "3")
	t.Setenv("PROSECHECK_NO_CACHE", "true")

	opts := isolatedOpts(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Output != config.FormatJSON {
		t.Errorf("expected output json from env, got %q", result.Config.Output)
	}
	if result.Config.Jobs != 3 {
		t.Errorf("expected jobs 3 from env, got %d", result.Config.Jobs)
	}
	if !result.Config.NoCache {
		t.Error("expected no_cache from env")
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	tmpDir := t.TempDir()

	t.Setenv("PROSECHECK_JOBS", "lots")

	opts := isolatedOpts(tmpDir)
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	if err == nil {
		t.Fatal("expected error for invalid PROSECHECK_JOBS")
	}
}

func TestLoad_UnknownKindRejected(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
checks:
  - name: bad
    kind: nonsense
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".prosecheck.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(context.Background(), isolatedOpts(tmpDir))
	if err == nil {
		t.Fatal("expected error for unknown check kind")
	}
	if !strings.Contains(err.Error(), "nonsense") {
		t.Errorf("error %q does not mention the unknown kind", err)
	}
}

func TestLoad_DuplicateCheckNamesRejected(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
checks:
  - name: twice
    kind: repetition
  - name: twice
    kind: repetition
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".prosecheck.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(context.Background(), isolatedOpts(tmpDir))
	if err == nil {
		t.Fatal("expected error for duplicate check names")
	}
}

func TestLoad_InvalidOutputRejected(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, ".prosecheck.yaml"), []byte("output: xml\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(context.Background(), isolatedOpts(tmpDir))
	if err == nil {
		t.Fatal("expected error for invalid output format")
	}
}

func TestLoad_EmptySpecimensWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
checks:
  - name: hollow
    kind: existence
    message: nothing to find
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".prosecheck.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	result, err := Load(context.Background(), isolatedOpts(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for a check with no specimens")
	}
}

func TestFindProjectConfig_SearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "docs", "guides")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	configPath := filepath.Join(root, ".prosecheck.yaml")
	if err := os.WriteFile(configPath, []byte("output: text\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	found, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != configPath {
		t.Errorf("expected %q, got %q", configPath, found)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	// Config above a VCS root must not be found from inside it.
	if err := os.WriteFile(filepath.Join(root, ".prosecheck.yaml"), []byte("output: text\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != "" {
		t.Errorf("expected no config, got %q", found)
	}
}

func TestMergeChecks_Order(t *testing.T) {
	t.Parallel()

	base := []config.Check{
		{Name: "a", Kind: config.KindRepetition},
		{Name: "b", Kind: config.KindRepetition},
	}
	override := []config.Check{
		{Name: "b", Kind: config.KindExistence, Specimens: []string{"x"}},
		{Name: "c", Kind: config.KindRepetition},
	}

	merged := mergeChecks(base, override)

	names := make([]string, len(merged))
	for i, c := range merged {
		names[i] = c.Name
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}
	if merged[1].Kind != config.KindExistence {
		t.Errorf("expected override to replace check b, got kind %q", merged[1].Kind)
	}
}
