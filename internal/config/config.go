package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Keymap struct {
	Normal map[string]string `toml:"normal"`
}

// PromptOptions tunes where the prompt puts the cursor after a rescroll,
// as a fraction of the width left over after the mode prefix.
type PromptOptions struct {
	ScrollBefore float64 `toml:"scroll-before"`
	ScrollAfter  float64 `toml:"scroll-after"`
}

type Theme struct {
	Theme               string `toml:"theme"`
	Foreground          string `toml:"foreground"`
	Background          string `toml:"background"`
	HeaderForeground    string `toml:"header-foreground"`
	SeparatorForeground string `toml:"separator-foreground"`
	SelectedForeground  string `toml:"selected-foreground"`
	SelectedBackground  string `toml:"selected-background"`
	StatusForeground    string `toml:"status-foreground"`
	StatusBackground    string `toml:"status-background"`
	PromptForeground    string `toml:"prompt-foreground"`
	PromptBackground    string `toml:"prompt-background"`
}

// Bridge names the external messenger process. An empty command selects
// the in-process client.
type Bridge struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

type Identity struct {
	Name string `toml:"name"`
}

type Config struct {
	Prompt   PromptOptions `toml:"prompt"`
	Theme    Theme         `toml:"theme"`
	Keymap   Keymap        `toml:"keymap"`
	Bridge   Bridge        `toml:"bridge"`
	Identity Identity      `toml:"identity"`
}

func Default() Config {
	return Config{
		Prompt: PromptOptions{
			ScrollBefore: 0.25,
			ScrollAfter:  0.75,
		},
		Theme: Theme{
			Theme:               "",
			Foreground:          "#DDDDDD",
			Background:          "#1C1C1C",
			HeaderForeground:    "#A381A6",
			SeparatorForeground: "#2B3336",
			SelectedForeground:  "#DDDDDD",
			SelectedBackground:  "#404040",
			StatusForeground:    "#DDDDDD",
			StatusBackground:    "#612020",
			PromptForeground:    "#DDDDDD",
			PromptBackground:    "#362065",
		},
		Keymap: Keymap{
			Normal: map[string]string{
				"j":      "move_down",
				"k":      "move_up",
				"down":   "move_down",
				"up":     "move_up",
				"a":      "enter_insert",
				"i":      "enter_insert",
				":":      "enter_command",
				"/":      "enter_search",
				"ctrl+c": "quit",
				"ctrl+l": "redraw",
			},
		},
		Identity: Identity{
			Name: "stannis",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if validFraction(userCfg.Prompt.ScrollBefore) {
		cfg.Prompt.ScrollBefore = userCfg.Prompt.ScrollBefore
	}
	if validFraction(userCfg.Prompt.ScrollAfter) {
		cfg.Prompt.ScrollAfter = userCfg.Prompt.ScrollAfter
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	if userCfg.Keymap.Normal != nil {
		for k, v := range userCfg.Keymap.Normal {
			cfg.Keymap.Normal[k] = v
		}
	}
	if userCfg.Bridge.Command != "" {
		cfg.Bridge = userCfg.Bridge
	}
	if userCfg.Identity.Name != "" {
		cfg.Identity.Name = userCfg.Identity.Name
	}

	return cfg, nil
}

func validFraction(v float64) bool {
	return v > 0 && v < 1
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.HeaderForeground != "" {
		dst.HeaderForeground = src.HeaderForeground
	}
	if src.SeparatorForeground != "" {
		dst.SeparatorForeground = src.SeparatorForeground
	}
	if src.SelectedForeground != "" {
		dst.SelectedForeground = src.SelectedForeground
	}
	if src.SelectedBackground != "" {
		dst.SelectedBackground = src.SelectedBackground
	}
	if src.StatusForeground != "" {
		dst.StatusForeground = src.StatusForeground
	}
	if src.StatusBackground != "" {
		dst.StatusBackground = src.StatusBackground
	}
	if src.PromptForeground != "" {
		dst.PromptForeground = src.PromptForeground
	}
	if src.PromptBackground != "" {
		dst.PromptBackground = src.PromptBackground
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads theme/<name>.toml, either bare or wrapped in [theme].
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme *Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err == nil && wrap.Theme != nil {
		return *wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("STANNIS_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "stannis"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "stannis"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
