// Package prefs keeps persistent user preferences in a small SQLite database.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"bic/common"
)

const themeKey = "theme"

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store is a key/value preference table. Not safe for concurrent use.
type Store struct {
	conn *sqlite.Conn
	log  *zap.Logger
}

// Open opens (creating if necessary) preference database at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("unable to create preferences directory: %w", err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("unable to open preferences (%s): %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare preferences (%s): %w", path, err)
	}

	log.Debug("Preferences opened", zap.String("path", path))
	return &Store{conn: conn, log: log}, nil
}

// Close releases database connection. Nil store is valid.
func (s *Store) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// Get returns stored value for key. ok is false when nothing was stored.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = sqlitex.Execute(s.conn, `SELECT value FROM preferences WHERE key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				value, ok = stmt.ColumnText(0), true
				return nil
			}})
	if err != nil {
		return "", false, fmt.Errorf("unable to read preference %q: %w", key, err)
	}
	return value, ok, nil
}

// Set stores value for key replacing previous one.
func (s *Store) Set(key, value string) error {
	err := sqlitex.Execute(s.conn,
		`INSERT INTO preferences (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		&sqlitex.ExecOptions{Args: []any{key, value}})
	if err != nil {
		return fmt.Errorf("unable to store preference %q: %w", key, err)
	}
	s.log.Debug("Preference stored", zap.String("key", key), zap.String("value", value))
	return nil
}

// Theme returns selected theme, light when nothing usable was stored.
func (s *Store) Theme() (common.Theme, error) {
	v, ok, err := s.Get(themeKey)
	if err != nil {
		return common.ThemeLight, err
	}
	if !ok {
		return common.ThemeLight, nil
	}
	theme, err := common.ParseTheme(v)
	if err != nil {
		s.log.Warn("Ignoring stored theme", zap.String("value", v), zap.Error(err))
		return common.ThemeLight, nil
	}
	return theme, nil
}

func (s *Store) SetTheme(theme common.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("unable to store theme: %w", common.ErrInvalidTheme)
	}
	return s.Set(themeKey, theme.String())
}
