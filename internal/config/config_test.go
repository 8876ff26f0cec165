package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitializeLoadsDefaults(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyTheme); got != "tokyonight" {
		t.Fatalf("expected default %s to be tokyonight, got %q", KeyTheme, got)
	}
	if got := GetInt(KeyRecentLimit); got != DefaultRecentLimit {
		t.Fatalf("expected default %s to be %d, got %d", KeyRecentLimit, DefaultRecentLimit, got)
	}
	if got := GetInt(KeyDebounceMillis); got != DefaultDebounceMillis {
		t.Fatalf("expected default %s to be %d, got %d", KeyDebounceMillis, DefaultDebounceMillis, got)
	}
	if got := GetString(KeyRecentDBPath); got != "" {
		t.Fatalf("expected default %s to be empty, got %q", KeyRecentDBPath, got)
	}
}

func TestProjectConfigOverridesUser(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	mustMkdir(t, filepath.Join(projectDir, ".hybridsel"))
	projectCfg := filepath.Join(projectDir, ".hybridsel", "config.yaml")
	writeFile(t, projectCfg, `
theme: dracula
recent:
  database-path: /project/recent.db
`)

	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
theme: github
recent:
  database-path: /user/recent.db
`)

	if err := Initialize(
		WithWorkingDir(projectDir),
		WithUserConfig(userCfg),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyTheme); got != "dracula" {
		t.Fatalf("expected project config to win for %s, got %q", KeyTheme, got)
	}
	if got := GetString(KeyRecentDBPath); got != "/project/recent.db" {
		t.Fatalf("expected project recent database path, got %q", got)
	}
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	mustMkdir(t, filepath.Join(projectDir, ".hybridsel"))
	projectCfg := filepath.Join(projectDir, ".hybridsel", "config.yaml")
	writeFile(t, projectCfg, `
theme: project
search:
  debounce-ms: 200
`)

	t.Setenv("HSEL_THEME", "env")
	t.Setenv("HSEL_SEARCH_DEBOUNCE_MS", "150")

	if err := Initialize(
		WithWorkingDir(projectDir),
		WithProjectConfig(projectCfg),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyTheme); got != "env" {
		t.Fatalf("expected environment variable to override %s, got %q", KeyTheme, got)
	}
	if got := GetInt(KeyDebounceMillis); got != 150 {
		t.Fatalf("expected env override for %s, got %d", KeyDebounceMillis, got)
	}

	overrides := map[string]any{
		KeyTheme:        "override",
		KeyMinSearchLen: 2,
	}
	if err := ApplyOverrides(overrides); err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}

	if got := GetString(KeyTheme); got != "override" {
		t.Fatalf("expected CLI override to set %s=override, got %q", KeyTheme, got)
	}
	if got := GetInt(KeyMinSearchLen); got != 2 {
		t.Fatalf("expected override for %s = 2, got %d", KeyMinSearchLen, got)
	}
}

func TestDebounceIntervalFallsBackOnBadValue(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml"))); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if err := Set(KeyDebounceMillis, -10); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got := DebounceInterval().Milliseconds(); got != DefaultDebounceMillis {
		t.Fatalf("expected fallback debounce %dms, got %dms", DefaultDebounceMillis, got)
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
