//go:build !darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for Windows/Linux
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		NewTab:   "Ctrl+T",
		CloseTab: "Ctrl+W",
		NextTab:  "Ctrl+Tab",
		PrevTab:  "Ctrl+Shift+Tab",

		// Reordering
		MoveTabLeft:  "Ctrl+Shift+Left",
		MoveTabRight: "Ctrl+Shift+Right",
		PinTab:       "Ctrl+Shift+P",
		DetachTab:    "Ctrl+Shift+N",
		ToggleGroup:  "Ctrl+Shift+G",

		Escape: "Escape",

		ToggleTheme:        "Ctrl+Shift+D",
		ToggleReduceMotion: "Ctrl+Shift+M",
	}
}
