package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitializeLoadsDefaults(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyThemeStorage); got != DefaultStorage {
		t.Fatalf("expected default %s to be %q, got %q", KeyThemeStorage, DefaultStorage, got)
	}
	if got := GetString(KeyPalette); got != DefaultPalette {
		t.Fatalf("expected default %s to be %q, got %q", KeyPalette, DefaultPalette, got)
	}
	if got := GetDuration(KeyCarouselInterval); got != DefaultCarouselInterval {
		t.Fatalf("expected default %s to be %v, got %v", KeyCarouselInterval, DefaultCarouselInterval, got)
	}
	if GetBool(KeyDebug) {
		t.Fatalf("expected default %s to be false", KeyDebug)
	}
}

func TestProjectConfigOverridesUser(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	mustMkdir(t, filepath.Join(projectDir, DirName))
	projectCfg := filepath.Join(projectDir, DirName, "config.yaml")
	writeFile(t, projectCfg, `
theme:
  storage: sqlite
  palette: mono
`)

	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
theme:
  storage: memory
  path: /user/prefs.db
carousel:
  interval: 7s
`)

	if err := Initialize(
		WithWorkingDir(projectDir),
		WithUserConfig(userCfg),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyThemeStorage); got != "sqlite" {
		t.Fatalf("expected project config to win for %s, got %q", KeyThemeStorage, got)
	}
	if got := GetString(KeyThemePath); got != "/user/prefs.db" {
		t.Fatalf("expected user value for %s to survive merge, got %q", KeyThemePath, got)
	}
	if got := GetDuration(KeyCarouselInterval); got != 7*time.Second {
		t.Fatalf("expected user carousel interval, got %v", got)
	}
}

func TestProjectConfigDiscoveredFromSubdirectory(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	nested := filepath.Join(projectDir, "a", "b")
	mustMkdir(t, filepath.Join(projectDir, DirName))
	mustMkdir(t, nested)
	writeFile(t, filepath.Join(projectDir, DirName, "config.yaml"), "theme:\n  palette: mono\n")

	if err := Initialize(WithWorkingDir(nested), WithUserConfig(filepath.Join(tmp, "none.yaml"))); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if got := GetString(KeyPalette); got != "mono" {
		t.Fatalf("expected discovered project palette, got %q", got)
	}
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	mustMkdir(t, filepath.Join(projectDir, DirName))
	projectCfg := filepath.Join(projectDir, DirName, "config.yaml")
	writeFile(t, projectCfg, `
theme:
  storage: config
appearance:
  poll-interval: 3s
`)

	t.Setenv("AGENTS_THEME_STORAGE", "sqlite")
	t.Setenv("AGENTS_APPEARANCE_POLL_INTERVAL", "9s")

	if err := Initialize(
		WithWorkingDir(projectDir),
		WithProjectConfig(projectCfg),
		WithUserConfig(filepath.Join(tmp, "none.yaml")),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyThemeStorage); got != "sqlite" {
		t.Fatalf("expected environment variable to override %s, got %q", KeyThemeStorage, got)
	}
	if got := GetDuration(KeyPollInterval); got != 9*time.Second {
		t.Fatalf("expected env poll interval, got %v", got)
	}

	if err := ApplyOverrides(map[string]any{KeyThemeStorage: "memory"}); err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if got := GetString(KeyThemeStorage); got != "memory" {
		t.Fatalf("expected override to win for %s, got %q", KeyThemeStorage, got)
	}
}

func TestGetDurationFallsBackOnNonPositive(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "none.yaml"))); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if err := Set(KeyCarouselResumeAfter, "0s"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got := GetDuration(KeyCarouselResumeAfter); got != DefaultCarouselResumeAfter {
		t.Fatalf("expected fallback to default, got %v", got)
	}
}

func TestInitializeRejectsDirectoryConfig(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")
	mustMkdir(t, userCfg)

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err == nil {
		t.Fatal("expected error when user config path is a directory")
	}
}

func TestEmptyConfigFileIsIgnored(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, "   \n")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if got := GetString(KeyThemeStorage); got != DefaultStorage {
		t.Fatalf("expected default storage, got %q", got)
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
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
