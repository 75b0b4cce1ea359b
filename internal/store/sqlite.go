package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/codd-collab/lang-server/internal/models"
)

// ErrDuplicateUsername is returned by CreateUser when the username is already
// taken. Detection relies on the driver's extended error code, not on the
// error message text.
var ErrDuplicateUsername = errors.New("username already exists")

// OpenDB opens (or creates) the SQLite database file at path.
//
// Writes are funneled through a single connection so concurrent inserts queue
// at the database layer instead of failing with SQLITE_BUSY; the UNIQUE
// constraint on username stays the sole arbiter of duplicates.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// SQLiteStore handles all SQL against the database file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Migrate creates the users and languages tables if they don't exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS languages (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT NOT NULL,
			coolness INTEGER
		)
	`)
	if err != nil {
		return fmt.Errorf("create languages table: %w", err)
	}
	return nil
}

// CreateUser inserts a new user in a single statement. The UNIQUE constraint
// on username does the duplicate check atomically with the insert; there is
// deliberately no SELECT-then-INSERT here.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		username, passwordHash,
	)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("user insert id: %w", err)
	}
	return &models.User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

// ListLanguages returns all languages sorted by coolness, coolest first.
func (s *SQLiteStore) ListLanguages(ctx context.Context) ([]models.Language, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, coolness FROM languages ORDER BY coolness DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query languages: %w", err)
	}
	defer rows.Close()

	languages := []models.Language{}
	for rows.Next() {
		var l models.Language
		if err := rows.Scan(&l.ID, &l.Name, &l.Coolness); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		languages = append(languages, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate languages: %w", err)
	}
	return languages, nil
}

// CreateLanguage inserts a new language and returns it with its generated id.
func (s *SQLiteStore) CreateLanguage(ctx context.Context, name string, coolness int) (*models.Language, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO languages (name, coolness) VALUES (?, ?)`,
		name, coolness,
	)
	if err != nil {
		return nil, fmt.Errorf("insert language: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("language insert id: %w", err)
	}
	return &models.Language{ID: id, Name: name, Coolness: coolness}, nil
}
