package config

import (
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/key"
)

// Hotkey represents a parsed keyboard shortcut
type Hotkey struct {
	Key       key.Name
	Modifiers key.Modifiers
}

// ParseHotkey parses a hotkey string like "Ctrl+Shift+N" into a Hotkey struct
func ParseHotkey(s string) Hotkey {
	if s == "" {
		return Hotkey{}
	}

	var mods key.Modifiers
	var rawKeyPart string

	parts := strings.Split(s, "+")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "ctrl", "control":
			mods |= key.ModCtrl
		case "shift":
			mods |= key.ModShift
		case "alt", "option":
			mods |= key.ModAlt
		case "cmd", "command":
			mods |= key.ModCommand // Use ModCommand for macOS Cmd key
		case "super", "meta", "win", "windows":
			mods |= key.ModSuper // Use ModSuper for Windows logo key
		default:
			// This is the key name
			rawKeyPart = part
		}
	}

	// Convert the key part to key.Name
	keyName := parseKeyName(rawKeyPart)

	// If Shift is held and this is a number key, convert to the shifted character
	// because Gio reports the shifted character (e.g., Shift+1 = "!")
	// Note: Punctuation should be specified directly (e.g., "Cmd+Shift+>" not "Cmd+Shift+.")
	if mods.Contain(key.ModShift) {
		if shifted, ok := shiftedNumbers[string(keyName)]; ok {
			keyName = key.Name(shifted)
		}
	}

	return Hotkey{Key: keyName, Modifiers: mods}
}

// shiftedNumbers maps number keys to their shifted equivalents (US keyboard layout)
// This is needed because Gio reports the shifted character, not the physical key
// Note: Punctuation should be specified directly as the shifted character (e.g., ">" not ".")
var shiftedNumbers = map[string]string{
	"1": "!", "2": "@", "3": "#", "4": "$", "5": "%",
	"6": "^", "7": "&", "8": "*", "9": "(", "0": ")",
}

// unshiftedNumbers is the reverse mapping for display purposes
var unshiftedNumbers = map[string]string{
	"!": "1", "@": "2", "#": "3", "$": "4", "%": "5",
	"^": "6", "&": "7", "*": "8", "(": "9", ")": "0",
}

// parseKeyName converts a key string to Gio's key.Name
func parseKeyName(s string) key.Name {
	// Handle single letters (case insensitive for parsing, but key.Name uses uppercase)
	if len(s) == 1 {
		return key.Name(strings.ToUpper(s))
	}

	// Handle special keys
	switch strings.ToLower(s) {
	// Function keys
	case "f1":
		return key.NameF1
	case "f2":
		return key.NameF2

	// Navigation keys
	case "up", "uparrow":
		return key.NameUpArrow
	case "down", "downarrow":
		return key.NameDownArrow
	case "left", "leftarrow":
		return key.NameLeftArrow
	case "right", "rightarrow":
		return key.NameRightArrow
	case "home":
		return key.NameHome
	case "end":
		return key.NameEnd
	case "pageup", "pgup":
		return key.NamePageUp
	case "pagedown", "pgdn", "pgdown":
		return key.NamePageDown

	// Editing keys
	case "enter", "return":
		return key.NameReturn
	case "tab":
		return key.NameTab
	case "space", "spacebar":
		return key.NameSpace
	case "backspace", "back":
		return key.NameDeleteBackward
	case "delete", "del":
		return key.NameDeleteForward
	case "escape", "esc":
		return key.NameEscape

	default:
		// Return as-is for unknown keys (supports custom key names)
		return key.Name(s)
	}
}

// Matches checks if a key event matches this hotkey
// Uses exact matching for modifiers to distinguish between similar hotkeys
// (e.g., Ctrl+H vs Ctrl+Shift+H)
func (h Hotkey) Matches(k key.Event) bool {
	if h.Key == "" {
		return false
	}
	return k.Name == h.Key && k.Modifiers == h.Modifiers
}

// MatchesLoose checks if a key event matches this hotkey, allowing extra modifiers
// This is useful when Shift might be held for capitalization
func (h Hotkey) MatchesLoose(k key.Event) bool {
	if h.Key == "" {
		return false
	}
	// Check that all required modifiers are present
	return k.Name == h.Key && (k.Modifiers&h.Modifiers) == h.Modifiers
}

// IsEmpty returns true if the hotkey is not configured
func (h Hotkey) IsEmpty() bool {
	return h.Key == ""
}

// String returns a human-readable representation of the hotkey
func (h Hotkey) String() string {
	if h.Key == "" {
		return ""
	}

	var parts []string
	if h.Modifiers.Contain(key.ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if h.Modifiers.Contain(key.ModCommand) {
		parts = append(parts, "Cmd")
	}
	if h.Modifiers.Contain(key.ModShift) {
		parts = append(parts, "Shift")
	}
	if h.Modifiers.Contain(key.ModAlt) {
		parts = append(parts, "Alt")
	}
	if h.Modifiers.Contain(key.ModSuper) {
		parts = append(parts, "Super")
	}

	// For display, convert shifted number symbols back to their original keys
	keyStr := string(h.Key)
	if h.Modifiers.Contain(key.ModShift) {
		if original, ok := unshiftedNumbers[keyStr]; ok {
			keyStr = original
		}
	}
	parts = append(parts, keyStr)
	return strings.Join(parts, "+")
}

// Filter returns a key.Filter that matches this hotkey
func (h Hotkey) Filter(focus event.Tag) key.Filter {
	return key.Filter{
		Focus:    focus,
		Name:     h.Key,
		Required: h.Modifiers,
	}
}

// HotkeysConfig holds keyboard shortcut strings, parsed by ParseHotkey
type HotkeysConfig struct {
	NewTab       string `json:"newTab"`
	CloseTab     string `json:"closeTab"`
	NextTab      string `json:"nextTab"`
	PrevTab      string `json:"prevTab"`
	MoveTabLeft  string `json:"moveTabLeft"`
	MoveTabRight string `json:"moveTabRight"`
	PinTab       string `json:"pinTab"`
	DetachTab    string `json:"detachTab"`
	ToggleGroup  string `json:"toggleGroup"`
	Escape       string `json:"escape"`

	ToggleTheme        string `json:"toggleTheme"`
	ToggleReduceMotion string `json:"toggleReduceMotion"`
}

// HotkeyMatcher provides efficient hotkey matching from config
type HotkeyMatcher struct {
	// Tabs
	NewTab   Hotkey
	CloseTab Hotkey
	NextTab  Hotkey
	PrevTab  Hotkey

	// Keyboard reordering, same commit path as a drag
	MoveTabLeft  Hotkey
	MoveTabRight Hotkey
	PinTab       Hotkey
	DetachTab    Hotkey
	ToggleGroup  Hotkey

	// Cancels an active drag
	Escape Hotkey

	// Settings, written back to the config file
	ToggleTheme        Hotkey
	ToggleReduceMotion Hotkey
}

// NewHotkeyMatcher creates a matcher from config
func NewHotkeyMatcher(cfg HotkeysConfig) *HotkeyMatcher {
	return &HotkeyMatcher{
		NewTab:   ParseHotkey(cfg.NewTab),
		CloseTab: ParseHotkey(cfg.CloseTab),
		NextTab:  ParseHotkey(cfg.NextTab),
		PrevTab:  ParseHotkey(cfg.PrevTab),

		MoveTabLeft:  ParseHotkey(cfg.MoveTabLeft),
		MoveTabRight: ParseHotkey(cfg.MoveTabRight),
		PinTab:       ParseHotkey(cfg.PinTab),
		DetachTab:    ParseHotkey(cfg.DetachTab),
		ToggleGroup:  ParseHotkey(cfg.ToggleGroup),

		Escape: ParseHotkey(cfg.Escape),

		ToggleTheme:        ParseHotkey(cfg.ToggleTheme),
		ToggleReduceMotion: ParseHotkey(cfg.ToggleReduceMotion),
	}
}

// Filters returns one key filter per distinct key and modifier pair
func (m *HotkeyMatcher) Filters(focus event.Tag) []event.Filter {
	type filterKey struct {
		name key.Name
		mods key.Modifiers
	}
	seen := make(map[filterKey]bool)
	var out []event.Filter
	for _, h := range []Hotkey{
		m.NewTab, m.CloseTab, m.NextTab, m.PrevTab,
		m.MoveTabLeft, m.MoveTabRight, m.PinTab, m.DetachTab, m.ToggleGroup,
		m.Escape, m.ToggleTheme, m.ToggleReduceMotion,
	} {
		fk := filterKey{h.Key, h.Modifiers}
		if h.IsEmpty() || seen[fk] {
			continue
		}
		seen[fk] = true
		out = append(out, h.Filter(focus))
	}
	return out
}
