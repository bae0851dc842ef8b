// Package store keeps lessons and their undo snapshots in SQLite database.
package store

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var (
	ErrNotFound   = errors.New("lesson not found")
	ErrNoSnapshot = errors.New("no snapshots to restore")
)

const schema = `
CREATE TABLE IF NOT EXISTS lessons (
	id      TEXT PRIMARY KEY,
	title   TEXT NOT NULL DEFAULT '',
	markup  TEXT NOT NULL,
	updated INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshots (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	lesson  TEXT NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
	markup  TEXT NOT NULL,
	created INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS snapshots_lesson ON snapshots(lesson, seq);
`

// Lesson is a stored document.
type Lesson struct {
	ID        string
	Title     string
	Markup    string
	Updated   time.Time
	Snapshots int
}

// Store is not safe for concurrent use, it owns a single connection.
type Store struct {
	log     *zap.Logger
	conn    *sqlite.Conn
	history int
	now     func() time.Time
}

// Open opens or creates database. History limits number of snapshots kept
// per lesson, 0 means no limit.
func Open(path string, history int, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := sqlite.OpenConn(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open store %s: %w", path, err)
	}
	// has no effect inside transaction, script runs in one
	if err := sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = ON;", nil); err != nil {
		return nil, multierr.Append(fmt.Errorf("unable to enable foreign keys: %w", err), conn.Close())
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return nil, multierr.Append(fmt.Errorf("unable to initialize store: %w", err), conn.Close())
	}
	log.Debug("Store opened", zap.String("path", path), zap.Int("history", history))
	return &Store{
		log:     log.Named("store"),
		conn:    conn,
		history: max(history, 0),
		now:     time.Now,
	}, nil
}

// Close releases database.
func (s *Store) Close() (err error) {
	if s.conn == nil {
		return nil
	}
	err = multierr.Append(err, s.conn.Close())
	s.conn = nil
	return err
}

// Save creates lesson or replaces its markup and title.
func (s *Store) Save(l Lesson) error {
	err := sqlitex.Execute(s.conn,
		`INSERT INTO lessons (id, title, markup, updated) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, markup = excluded.markup, updated = excluded.updated`,
		&sqlitex.ExecOptions{Args: []any{l.ID, l.Title, l.Markup, s.now().UnixNano()}})
	if err != nil {
		return fmt.Errorf("unable to save lesson %s: %w", l.ID, err)
	}
	return nil
}

// UpdateMarkup replaces markup of existing lesson.
func (s *Store) UpdateMarkup(id, markup string) error {
	err := sqlitex.Execute(s.conn, `UPDATE lessons SET markup = ?, updated = ? WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{markup, s.now().UnixNano(), id}})
	if err != nil {
		return fmt.Errorf("unable to update lesson %s: %w", id, err)
	}
	if s.conn.Changes() == 0 {
		return fmt.Errorf("lesson %s: %w", id, ErrNotFound)
	}
	return nil
}

// Lesson returns stored lesson.
func (s *Store) Lesson(id string) (Lesson, error) {
	var (
		l     Lesson
		found bool
	)
	err := sqlitex.Execute(s.conn,
		`SELECT l.id, l.title, l.markup, l.updated, (SELECT count(*) FROM snapshots WHERE lesson = l.id)
		FROM lessons l WHERE l.id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				l, found = scanLesson(stmt), true
				l.Markup = stmt.ColumnText(2)
				return nil
			},
		})
	if err != nil {
		return Lesson{}, fmt.Errorf("unable to read lesson %s: %w", id, err)
	}
	if !found {
		return Lesson{}, fmt.Errorf("lesson %s: %w", id, ErrNotFound)
	}
	return l, nil
}

// Lessons lists stored lessons without markup in natural id order.
func (s *Store) Lessons() ([]Lesson, error) {
	var list []Lesson
	err := sqlitex.Execute(s.conn,
		`SELECT l.id, l.title, '', l.updated, (SELECT count(*) FROM snapshots WHERE lesson = l.id) FROM lessons l`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				list = append(list, scanLesson(stmt))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to list lessons: %w", err)
	}
	slices.SortFunc(list, func(a, b Lesson) int {
		switch {
		case natural.Less(a.ID, b.ID):
			return -1
		case natural.Less(b.ID, a.ID):
			return 1
		}
		return 0
	})
	return list, nil
}

// Delete removes lesson together with its snapshots.
func (s *Store) Delete(id string) error {
	if err := sqlitex.Execute(s.conn, `DELETE FROM lessons WHERE id = ?`, &sqlitex.ExecOptions{Args: []any{id}}); err != nil {
		return fmt.Errorf("unable to delete lesson %s: %w", id, err)
	}
	if s.conn.Changes() == 0 {
		return fmt.Errorf("lesson %s: %w", id, ErrNotFound)
	}
	return nil
}

// PushSnapshot records markup lesson had before a mutation. Oldest snapshots
// beyond history limit are dropped.
func (s *Store) PushSnapshot(id, markup string) (err error) {
	defer sqlitex.Save(s.conn)(&err)

	err = sqlitex.Execute(s.conn, `INSERT INTO snapshots (lesson, markup, created) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{id, markup, s.now().UnixNano()}})
	if err != nil {
		return fmt.Errorf("unable to store snapshot for %s: %w", id, err)
	}
	if s.history == 0 {
		return nil
	}
	err = sqlitex.Execute(s.conn,
		`DELETE FROM snapshots WHERE lesson = ? AND seq NOT IN
		(SELECT seq FROM snapshots WHERE lesson = ? ORDER BY seq DESC LIMIT ?)`,
		&sqlitex.ExecOptions{Args: []any{id, id, s.history}})
	if err != nil {
		return fmt.Errorf("unable to prune snapshots for %s: %w", id, err)
	}
	if n := s.conn.Changes(); n > 0 {
		s.log.Debug("Snapshots pruned", zap.String("lesson", id), zap.Int("count", n))
	}
	return nil
}

// PopSnapshot removes and returns the latest snapshot.
func (s *Store) PopSnapshot(id string) (markup string, err error) {
	defer sqlitex.Save(s.conn)(&err)

	var (
		seq   int64
		found bool
	)
	err = sqlitex.Execute(s.conn, `SELECT seq, markup FROM snapshots WHERE lesson = ? ORDER BY seq DESC LIMIT 1`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				seq, markup, found = stmt.ColumnInt64(0), stmt.ColumnText(1), true
				return nil
			},
		})
	if err != nil {
		return "", fmt.Errorf("unable to read snapshot for %s: %w", id, err)
	}
	if !found {
		return "", fmt.Errorf("lesson %s: %w", id, ErrNoSnapshot)
	}
	if err = sqlitex.Execute(s.conn, `DELETE FROM snapshots WHERE seq = ?`, &sqlitex.ExecOptions{Args: []any{seq}}); err != nil {
		return "", fmt.Errorf("unable to drop snapshot for %s: %w", id, err)
	}
	return markup, nil
}

// Undo restores lesson markup from the latest snapshot.
func (s *Store) Undo(id string) (markup string, err error) {
	defer sqlitex.Save(s.conn)(&err)

	if markup, err = s.PopSnapshot(id); err != nil {
		return "", err
	}
	if err = s.UpdateMarkup(id, markup); err != nil {
		return "", err
	}
	return markup, nil
}

func scanLesson(stmt *sqlite.Stmt) Lesson {
	return Lesson{
		ID:        stmt.ColumnText(0),
		Title:     stmt.ColumnText(1),
		Updated:   time.Unix(0, stmt.ColumnInt64(3)),
		Snapshots: stmt.ColumnInt(4),
	}
}
