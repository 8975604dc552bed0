package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/justyntemme/tabdeck/internal/debug"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

// ErrInvalid wraps validation failures reported by ParseError
var ErrInvalid = errors.New("config: invalid settings")

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	UI       UIConfig       `json:"ui"`
	Tabs     TabsConfig     `json:"tabs"`
	DragDrop DragDropConfig `json:"dragDrop"`
	Hotkeys  HotkeysConfig  `json:"hotkeys"`
}

// UIConfig holds UI-related settings
type UIConfig struct {
	Theme          string `json:"theme" validate:"oneof=light dark"`
	Orientation    string `json:"orientation" validate:"oneof=horizontal vertical"`
	ReduceMotion   bool   `json:"reduceMotion"`
	TabMinWidth    int    `json:"tabMinWidth" validate:"min=40,max=400"`
	TabMaxWidth    int    `json:"tabMaxWidth" validate:"gtefield=TabMinWidth,max=600"`
	PinnedTabWidth int    `json:"pinnedTabWidth" validate:"min=24,max=200"`
}

// TabsConfig holds tab-related settings
type TabsConfig struct {
	NewTabLocation  string `json:"newTabLocation" validate:"oneof=end after_active"`
	LastTabBehavior string `json:"lastTabBehavior" validate:"oneof=close_window keep_empty"`
	RestoreOnStart  bool   `json:"restoreOnStart"`
	DefaultPath     string `json:"defaultPath"` // Path for new tabs; empty means home
}

// DragDropConfig tunes tab dragging. Percentages are of the overlapped
// item's size.
type DragDropConfig struct {
	MoveOverThresholdPercent int  `json:"moveOverThresholdPercent" validate:"min=50,max=95"`
	GroupOverlapPercent      int  `json:"groupOverlapPercent" validate:"min=1,ltfield=MoveOverThresholdPercent"`
	CreateGroupDelayMS       int  `json:"createGroupDelayMS" validate:"min=0,max=5000"`
	AnimationMS              int  `json:"animationMS" validate:"min=0,max=1000"`
	DetachDistanceDp         int  `json:"detachDistanceDp" validate:"min=0,max=400"`
	AllowDetach              bool `json:"allowDetach"`
	DragToPin                bool `json:"dragToPin"`
}

// MoveOver returns the move-over threshold as a fraction
func (d DragDropConfig) MoveOver() float32 { return float32(d.MoveOverThresholdPercent) / 100 }

// GroupOverlap returns the grouping threshold as a fraction
func (d DragDropConfig) GroupOverlap() float32 { return float32(d.GroupOverlapPercent) / 100 }

// GroupDelay returns the grouping debounce delay
func (d DragDropConfig) GroupDelay() time.Duration {
	return time.Duration(d.CreateGroupDelayMS) * time.Millisecond
}

// Animation returns the reflow animation duration
func (d DragDropConfig) Animation() time.Duration {
	return time.Duration(d.AnimationMS) * time.Millisecond
}

// Thresholds converts the drag settings for the drag controller
func (d DragDropConfig) Thresholds() tabstrip.Thresholds {
	return tabstrip.Thresholds{
		MoveOver:     d.MoveOver(),
		GroupOverlap: d.GroupOverlap(),
		GroupDelay:   d.GroupDelay(),
	}.Normalized()
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: DefaultConfig(),
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme:          "light",
			Orientation:    "horizontal",
			ReduceMotion:   false,
			TabMinWidth:    76,
			TabMaxWidth:    225,
			PinnedTabWidth: 36,
		},
		Tabs: TabsConfig{
			NewTabLocation:  "end",
			LastTabBehavior: "close_window",
			RestoreOnStart:  true,
		},
		DragDrop: DragDropConfig{
			MoveOverThresholdPercent: 50,
			GroupOverlapPercent:      25,
			CreateGroupDelayMS:       350,
			AnimationMS:              150,
			DetachDistanceDp:         60,
			AllowDetach:              true,
			DragToPin:                true,
		},
		Hotkeys: DefaultHotkeys(),
	}
}

// ConfigPath returns the config file path: ~/.config/tabdeck/config.json
// This is consistent across all platforms (Windows, macOS, Linux)
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tabdeck", "config.json")
}

// Load reads the configuration from the default config file
func (m *Manager) Load() error {
	return m.LoadFrom(ConfigPath())
}

// LoadFrom reads the configuration from path.
// If the file doesn't exist, creates it with defaults.
// If parsing fails, stores the error and returns defaults.
// Sections that fail validation fall back to their defaults.
func (m *Manager) LoadFrom(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.path = path
	m.parseErr = nil

	// Ensure config directory exists
	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		log.Printf("Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	// Missing keys keep their defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Printf("Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}

	if err := Validate(cfg); err != nil {
		log.Printf("Config: %v", err)
		m.parseErr = err
	}

	debug.Log(debug.CONFIG, "Loaded %s: dragDrop=%+v", m.path, cfg.DragDrop)
	m.config = cfg
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg and resets every section with an invalid field to its
// defaults. The returned error lists the offending fields and wraps
// ErrInvalid.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	defaults := DefaultConfig()
	reset := make(map[string]bool)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is Config.<Section>.<Field>
		parts := strings.Split(fe.StructNamespace(), ".")
		if len(parts) > 1 {
			reset[parts[1]] = true
		}
		fields = append(fields, fmt.Sprintf("%s (%s=%s)", fe.Namespace(), fe.Tag(), fe.Param()))
	}
	if reset["UI"] {
		cfg.UI = defaults.UI
	}
	if reset["Tabs"] {
		cfg.Tabs = defaults.Tabs
	}
	if reset["DragDrop"] {
		cfg.DragDrop = defaults.DragDrop
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(fields, ", "))
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.path == "" {
		m.path = ConfigPath()
	}
	return m.saveUnlocked()
}

// Path returns the file the configuration was loaded from
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetTheme updates the theme setting and saves it
func (m *Manager) SetTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("%w: theme %q", ErrInvalid, theme)
	}
	m.mu.Lock()
	m.config.UI.Theme = theme
	m.mu.Unlock()
	return m.Save()
}

// SetReduceMotion updates the reduce motion setting and saves it
func (m *Manager) SetReduceMotion(on bool) error {
	m.mu.Lock()
	m.config.UI.ReduceMotion = on
	m.mu.Unlock()
	return m.Save()
}

// SetDragDrop replaces the drag settings after validating them
func (m *Manager) SetDragDrop(d DragDropConfig) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	m.mu.Lock()
	m.config.DragDrop = d
	m.mu.Unlock()
	return m.Save()
}

// IsDarkMode returns true if dark mode is enabled
func (m *Manager) IsDarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.UI.Theme == "dark"
}

// GetDragDrop returns the drag settings
func (m *Manager) GetDragDrop() DragDropConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.DragDrop
}

// GenerateConfig backs up existing config and creates a fresh default config
// Returns the backup path if a backup was created, or empty string if no existing config
func GenerateConfig() (backupPath string, err error) {
	return GenerateConfigAt(ConfigPath())
}

// GenerateConfigAt is GenerateConfig for an explicit path
func GenerateConfigAt(configPath string) (backupPath string, err error) {

	if _, err := os.Stat(configPath); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(configPath), "config.backup."+timestamp+".json")

		data, err := os.ReadFile(configPath)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}
	return backupPath, nil
}
