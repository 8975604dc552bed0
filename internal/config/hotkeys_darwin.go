//go:build darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for macOS
// Uses Cmd for tab commands (macOS convention)
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		NewTab:   "Cmd+T",
		CloseTab: "Cmd+W",
		NextTab:  "Ctrl+Tab",
		PrevTab:  "Ctrl+Shift+Tab",

		// Reordering
		MoveTabLeft:  "Cmd+Shift+Left",
		MoveTabRight: "Cmd+Shift+Right",
		PinTab:       "Cmd+Shift+P",
		DetachTab:    "Cmd+Shift+N",
		ToggleGroup:  "Cmd+Shift+G",

		Escape: "Escape",

		ToggleTheme:        "Cmd+Shift+D",
		ToggleReduceMotion: "Cmd+Shift+M",
	}
}
