package config

import "github.com/oriterm/oriterm/palette"

// ThemeOption describes an available theme-picker entry; a thin
// config-facing wrapper over palette.SchemeOptions so the menu package
// doesn't need to import palette directly for UI labels.
type ThemeOption struct {
	Name  string
	Label string
}

// ThemeOptions lists the built-in themes for the settings theme picker.
func ThemeOptions() []ThemeOption {
	schemes := palette.SchemeOptions()
	out := make([]ThemeOption, 0, len(schemes))
	for _, s := range schemes {
		out = append(out, ThemeOption{Name: s.Name, Label: s.Label})
	}
	return out
}

// ThemeLabel returns the display label for a theme name. An empty name gets
// the first built-in scheme's label; any other unknown name is returned
// unchanged.
func ThemeLabel(name string) string {
	for _, opt := range ThemeOptions() {
		if opt.Name == name {
			return opt.Label
		}
	}
	if name == "" {
		opts := ThemeOptions()
		if len(opts) > 0 {
			return opts[0].Label
		}
	}
	return name
}
