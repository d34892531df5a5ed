package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default planning settings applied to every run
	DefaultTrailer           Trailer      `json:"default_trailer"`
	DefaultPallets           []PalletSize `json:"default_pallets"`
	DefaultPlaceholderHeight float64      `json:"default_placeholder_height"`
	DefaultStrategy          string       `json:"default_strategy"`

	// Server preferences
	ListenAddr string `json:"listen_addr"`
	ChartTheme string `json:"chart_theme"` // go-echarts theme name
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultTrailer:           defaults.Trailer,
		DefaultPallets:           defaults.Pallets,
		DefaultPlaceholderHeight: defaults.PlaceholderHeight,
		DefaultStrategy:          defaults.Strategy,
		ListenAddr:               ":8080",
		ChartTheme:               "white",
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
// Zero values in the config leave the corresponding setting untouched.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if c.DefaultTrailer.Length > 0 && c.DefaultTrailer.Width > 0 {
		s.Trailer = c.DefaultTrailer
	}
	if len(c.DefaultPallets) > 0 {
		s.Pallets = append([]PalletSize(nil), c.DefaultPallets...)
	}
	if c.DefaultPlaceholderHeight > 0 {
		s.PlaceholderHeight = c.DefaultPlaceholderHeight
	}
	if c.DefaultStrategy != "" {
		s.Strategy = c.DefaultStrategy
	}
}

// Settings returns planning settings built from the defaults and this config.
func (c AppConfig) Settings() Settings {
	s := DefaultSettings()
	c.ApplyToSettings(&s)
	return s
}
