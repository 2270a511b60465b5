package coursetypes

// Theme selects the display color scheme.
type Theme string

// Supported themes.
const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// SizeTier is a coarse size selection for fonts and icons.
type SizeTier string

// Supported size tiers.
const (
	SizeSmall  SizeTier = "small"
	SizeMedium SizeTier = "medium"
	SizeLarge  SizeTier = "large"
)

// UserSettings holds pure display configuration. Last write wins; settings
// persist independently of sessions.
type UserSettings struct {
	Theme            Theme    `json:"theme"`
	PrimaryColor     string   `json:"primaryColor"`
	FontSize         SizeTier `json:"fontSize"`
	IconSize         SizeTier `json:"iconSize"`
	SidebarCollapsed bool     `json:"sidebarCollapsed"`
	LayoutSpacing    string   `json:"layoutSpacing"`
}

// SettingsDelta is a partial settings update. Nil fields are left unchanged.
type SettingsDelta struct {
	Theme            *Theme
	PrimaryColor     *string
	FontSize         *SizeTier
	IconSize         *SizeTier
	SidebarCollapsed *bool
	LayoutSpacing    *string
}

// DefaultSettings returns the settings used before any user customization.
func DefaultSettings() UserSettings {
	return UserSettings{
		Theme:            ThemeDark,
		PrimaryColor:     "indigo",
		FontSize:         SizeMedium,
		IconSize:         SizeMedium,
		SidebarCollapsed: false,
		LayoutSpacing:    "comfortable",
	}
}
