package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrLocked indica que otro proceso ya tiene abierta la misma base.
var ErrLocked = errors.New("sqlite database is in use by another process")

// Store es una base SQLite de un solo proceso: el archivo <path>.lock se
// toma con flock mientras el Store está abierto.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open abre (o crea) la base en path y aplica el esquema.
// ":memory:" abre una base efímera sin lock.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path required")
	}

	var lock *flock.Flock
	if path != ":memory:" {
		lock = flock.New(path + ".lock")
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return nil, ErrLocked
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		unlock(lock)
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Una sola conexión: los PRAGMA son por conexión y las escrituras quedan serializadas.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			unlock(lock)
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		unlock(lock)
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, lock: lock, path: path}, nil
}

// Pets devuelve el repositorio de perfiles sobre esta base.
func (s *Store) Pets() *PetsRepo {
	return NewPetsRepo(s.db)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	unlock(s.lock)
	return err
}

func unlock(l *flock.Flock) {
	if l != nil {
		_ = l.Unlock()
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
