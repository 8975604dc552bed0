package store

import (
	"database/sql"
	"errors"
	"sort"
)

var (
	ErrNoSession = errors.New("store: no session")
)

// Record kinds
const (
	KindTab   = "tab"
	KindGroup = "group"
	KindSplit = "split"
)

// Record is one strip element. Group records use Name, Color and Collapsed;
// split records carry their left half in Title, Path and LeftID and their
// right half in the Right fields.
type Record struct {
	Kind    string
	ID      string
	Title   string
	Path    string
	Pinned  bool
	GroupID string

	LeftID     string
	RightID    string
	RightTitle string
	RightPath  string

	Name      string
	Color     string
	Collapsed bool
}

// Session is a window's strip in order plus its active element
type Session struct {
	Window string
	Active string
	Items  []Record
}

func (d *DB) saveSession(s *Session) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteWindow(tx, s.Window); err != nil {
		return err
	}
	// Keep created_at so restore order follows window creation
	if _, err := tx.Exec(`INSERT INTO windows (window_id, active) VALUES (?, ?)
		ON CONFLICT(window_id) DO UPDATE SET active = excluded.active`, s.Window, s.Active); err != nil {
		return err
	}

	tabStmt, err := tx.Prepare(`INSERT INTO tabs
		(window_id, position, id, kind, title, path, pinned, group_id, left_id, right_id, right_title, right_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer tabStmt.Close()
	groupStmt, err := tx.Prepare(`INSERT INTO tab_groups
		(window_id, position, id, name, color, collapsed) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer groupStmt.Close()

	for pos, r := range s.Items {
		if r.Kind == KindGroup {
			_, err = groupStmt.Exec(s.Window, pos, r.ID, r.Name, r.Color, r.Collapsed)
		} else {
			_, err = tabStmt.Exec(s.Window, pos, r.ID, r.Kind, r.Title, r.Path, r.Pinned, r.GroupID,
				r.LeftID, r.RightID, r.RightTitle, r.RightPath)
		}
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

type positioned struct {
	pos int
	rec Record
}

func (d *DB) loadSession(window string) (*Session, error) {
	s := &Session{Window: window}
	err := d.conn.QueryRow("SELECT active FROM windows WHERE window_id = ?", window).Scan(&s.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var all []positioned
	rows, err := d.conn.Query(`SELECT position, id, kind, title, path, pinned, group_id,
		left_id, right_id, right_title, right_path FROM tabs WHERE window_id = ?`, window)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var p positioned
		if err := rows.Scan(&p.pos, &p.rec.ID, &p.rec.Kind, &p.rec.Title, &p.rec.Path, &p.rec.Pinned,
			&p.rec.GroupID, &p.rec.LeftID, &p.rec.RightID, &p.rec.RightTitle, &p.rec.RightPath); err != nil {
			rows.Close()
			return nil, err
		}
		all = append(all, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = d.conn.Query(`SELECT position, id, name, color, collapsed FROM tab_groups WHERE window_id = ?`, window)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p := positioned{rec: Record{Kind: KindGroup}}
		if err := rows.Scan(&p.pos, &p.rec.ID, &p.rec.Name, &p.rec.Color, &p.rec.Collapsed); err != nil {
			return nil, err
		}
		all = append(all, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool { return all[i].pos < all[j].pos })
	s.Items = make([]Record, len(all))
	for i, p := range all {
		s.Items[i] = p.rec
	}
	return s, nil
}

func deleteWindow(tx *sql.Tx, window string) error {
	if _, err := tx.Exec("DELETE FROM tabs WHERE window_id = ?", window); err != nil {
		return err
	}
	_, err := tx.Exec("DELETE FROM tab_groups WHERE window_id = ?", window)
	return err
}
