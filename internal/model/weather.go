package model

// Theme is the persisted display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored value to a Theme. Anything unrecognised is light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.IsDark() {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string {
	return string(ParseTheme(string(t)))
}
