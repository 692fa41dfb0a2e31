package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("STANNIS_CONFIG_HOME", "/tmp/stannis-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/stannis-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/stannis-config")
	}

	t.Setenv("STANNIS_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/stannis" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/stannis")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("STANNIS_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Prompt.ScrollBefore != 0.25 || cfg.Prompt.ScrollAfter != 0.75 {
		t.Fatalf("prompt = %+v, want 0.25/0.75", cfg.Prompt)
	}
	if cfg.Keymap.Normal["j"] != "move_down" {
		t.Fatalf("keymap j = %q, want %q", cfg.Keymap.Normal["j"], "move_down")
	}
	if cfg.Bridge.Command != "" {
		t.Fatalf("bridge command = %q, want empty", cfg.Bridge.Command)
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STANNIS_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "test.toml"), `
foreground = "#111111"
background = "#222222"
status-background = "#333333"
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[prompt]
scroll-before = 0.5
scroll-after = 1.5

[theme]
theme = "test"
prompt-background = "#123456"

[keymap.normal]
x = "quit"

[bridge]
command = "tox-bridge"
args = ["--profile", "main"]

[identity]
name = "mahkoh"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Prompt.ScrollBefore != 0.5 {
		t.Fatalf("ScrollBefore = %v, want 0.5", cfg.Prompt.ScrollBefore)
	}
	if cfg.Prompt.ScrollAfter != 0.75 {
		t.Fatalf("ScrollAfter = %v, want default 0.75 for out of range value", cfg.Prompt.ScrollAfter)
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.StatusBackground != "#333333" {
		t.Fatalf("StatusBackground = %q, want %q", cfg.Theme.StatusBackground, "#333333")
	}
	if cfg.Theme.PromptBackground != "#123456" {
		t.Fatalf("PromptBackground = %q, want %q", cfg.Theme.PromptBackground, "#123456")
	}
	if cfg.Theme.HeaderForeground != "#A381A6" {
		t.Fatalf("HeaderForeground = %q, want default", cfg.Theme.HeaderForeground)
	}
	if cfg.Keymap.Normal["x"] != "quit" {
		t.Fatalf("keymap x = %q, want %q", cfg.Keymap.Normal["x"], "quit")
	}
	if cfg.Keymap.Normal["k"] != "move_up" {
		t.Fatalf("keymap k = %q, want %q", cfg.Keymap.Normal["k"], "move_up")
	}
	if cfg.Bridge.Command != "tox-bridge" || len(cfg.Bridge.Args) != 2 {
		t.Fatalf("bridge = %+v, want tox-bridge with 2 args", cfg.Bridge)
	}
	if cfg.Identity.Name != "mahkoh" {
		t.Fatalf("identity = %q, want %q", cfg.Identity.Name, "mahkoh")
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STANNIS_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "#aaaaaa"
background = "#bbbbbb"
`)

	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "#aaaaaa" {
		t.Fatalf("Foreground = %q, want %q", theme.Foreground, "#aaaaaa")
	}
	if theme.Background != "#bbbbbb" {
		t.Fatalf("Background = %q, want %q", theme.Background, "#bbbbbb")
	}
}

func TestLoadRejectsBadToml(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STANNIS_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[prompt\n")
	if _, err := Load(); err == nil {
		t.Fatalf("Load error = nil, want parse error")
	}
}
