package store

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/tabdeck/internal/debug"
)

type EventType int

const (
	FetchSettings EventType = iota
	SaveSetting
	SaveSession
	LoadSession
	ListSessions
	DeleteSession
)

// String names the operation for logging
func (e EventType) String() string {
	switch e {
	case FetchSettings:
		return "FetchSettings"
	case SaveSetting:
		return "SaveSetting"
	case SaveSession:
		return "SaveSession"
	case LoadSession:
		return "LoadSession"
	case ListSessions:
		return "ListSessions"
	case DeleteSession:
		return "DeleteSession"
	}
	return "Unknown"
}

type Request struct {
	Op      EventType
	Key     string
	Value   string
	Window  string
	Session *Session
}

type Response struct {
	Op       EventType
	Window   string
	Settings map[string]string // Key-value settings
	Session  *Session
	Windows  []string // Windows with a saved session, oldest first
	Err      error
}

type DB struct {
	conn         *sql.DB
	RequestChan  chan Request
	ResponseChan chan Response
}

func NewDB() *DB {
	return &DB{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

// DefaultPath returns ~/.config/tabdeck/session.db
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tabdeck", "session.db")
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return err
	}

	for _, query := range schema {
		if _, err := db.Exec(query); err != nil {
			db.Close()
			return err
		}
	}

	d.conn = db
	debug.Log(debug.STORE, "Opened %s", dbPath)
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS windows (
		window_id TEXT PRIMARY KEY,
		active TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
	// One row per strip element in strip order. Group labels live in tab_groups
	// and are placed by position like any other element.
	`CREATE TABLE IF NOT EXISTS tabs (
		window_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		kind TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL DEFAULT '',
		pinned INTEGER NOT NULL DEFAULT 0,
		group_id TEXT NOT NULL DEFAULT '',
		left_id TEXT NOT NULL DEFAULT '',
		right_id TEXT NOT NULL DEFAULT '',
		right_title TEXT NOT NULL DEFAULT '',
		right_path TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (window_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS tab_groups (
		window_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		collapsed INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (window_id, id)
	);`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`,
}

// Start serves requests until RequestChan is closed
func (d *DB) Start() {
	for req := range d.RequestChan {
		debug.Log(debug.STORE, "Request %s window=%s", req.Op, req.Window)
		switch req.Op {
		case FetchSettings:
			d.handleFetchSettings()
		case SaveSetting:
			d.handleSaveSetting(req.Key, req.Value)
		case SaveSession:
			d.handleSaveSession(req.Session)
		case LoadSession:
			d.handleLoadSession(req.Window)
		case ListSessions:
			d.handleListSessions()
		case DeleteSession:
			d.handleDeleteSession(req.Window)
		}
	}
}

func (d *DB) handleFetchSettings() {
	settings, err := d.fetchSettings()
	d.ResponseChan <- Response{Op: FetchSettings, Settings: settings, Err: err}
}

func (d *DB) fetchSettings() (map[string]string, error) {
	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err == nil {
			settings[key] = value
		}
	}
	return settings, rows.Err()
}

func (d *DB) handleSaveSetting(key, value string) {
	// Use INSERT OR REPLACE to upsert the setting
	_, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		log.Printf("Store Error saving setting %s: %v", key, err)
		d.ResponseChan <- Response{Op: SaveSetting, Err: err}
		return
	}
	// Reply with the settings after the write
	settings, err := d.fetchSettings()
	d.ResponseChan <- Response{Op: SaveSetting, Settings: settings, Err: err}
}

func (d *DB) handleSaveSession(s *Session) {
	if s == nil {
		d.ResponseChan <- Response{Op: SaveSession, Err: ErrNoSession}
		return
	}
	err := d.saveSession(s)
	if err != nil {
		log.Printf("Store Error saving session %s: %v", s.Window, err)
	}
	d.ResponseChan <- Response{Op: SaveSession, Window: s.Window, Err: err}
}

func (d *DB) handleLoadSession(window string) {
	s, err := d.loadSession(window)
	d.ResponseChan <- Response{Op: LoadSession, Window: window, Session: s, Err: err}
}

func (d *DB) handleListSessions() {
	rows, err := d.conn.Query("SELECT window_id FROM windows ORDER BY created_at ASC, rowid ASC")
	if err != nil {
		d.ResponseChan <- Response{Op: ListSessions, Err: err}
		return
	}
	defer rows.Close()

	var windows []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err == nil {
			windows = append(windows, w)
		}
	}
	d.ResponseChan <- Response{Op: ListSessions, Windows: windows, Err: rows.Err()}
}

func (d *DB) handleDeleteSession(window string) {
	tx, err := d.conn.Begin()
	if err == nil {
		err = deleteWindow(tx, window)
		if err == nil {
			_, err = tx.Exec("DELETE FROM windows WHERE window_id = ?", window)
		}
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}
	if err != nil {
		log.Printf("Store Error deleting session %s: %v", window, err)
	}
	d.ResponseChan <- Response{Op: DeleteSession, Window: window, Err: err}
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
