package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/miskatonicsociety/keeperbot/internal/character"
)

// SQLStore persists character records in a single table of
// (user_id, sheet) rows, where sheet is the JSON-encoded record. The
// mapping is always written as a whole, mirroring the file backend's
// semantics.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL opens the database selected by the dialect and runs the
// schema migration.
func OpenSQL(dialect Dialect, cfg Config) (*SQLStore, error) {
	var dsn string
	switch dialect.DriverName() {
	case "sqlite":
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.Path
	case "postgres":
		p := cfg.Postgres
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	s := &SQLStore{db: db, dialect: dialect}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// migrate creates the characters table if it doesn't exist.
func (s *SQLStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS characters (
		user_id TEXT PRIMARY KEY,
		sheet TEXT NOT NULL
	)`)
	return err
}

// Load reads every stored record.
func (s *SQLStore) Load() (map[string]*character.Record, error) {
	rows, err := s.db.Query("SELECT user_id, sheet FROM characters")
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	defer rows.Close()

	records := make(map[string]*character.Record)
	for rows.Next() {
		var userID, sheet string
		if err := rows.Scan(&userID, &sheet); err != nil {
			return nil, fmt.Errorf("failed to scan character row: %w", err)
		}
		var rec character.Record
		if err := json.Unmarshal([]byte(sheet), &rec); err != nil {
			return nil, fmt.Errorf("failed to parse sheet for %s: %w", userID, err)
		}
		records[userID] = &rec
	}
	return records, rows.Err()
}

// Save replaces the stored mapping with the given one inside a single
// transaction.
func (s *SQLStore) Save(records map[string]*character.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM characters"); err != nil {
		return fmt.Errorf("failed to clear characters: %w", err)
	}

	insert := fmt.Sprintf("INSERT INTO characters (user_id, sheet) VALUES (%s, %s)",
		s.dialect.Placeholder(1), s.dialect.Placeholder(2))
	for userID, rec := range records {
		sheet, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode sheet for %s: %w", userID, err)
		}
		if _, err := tx.Exec(insert, userID, string(sheet)); err != nil {
			return fmt.Errorf("failed to insert character %s: %w", userID, err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
