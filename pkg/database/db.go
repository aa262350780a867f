package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath keeps the database in process memory. Nothing survives a
// restart, which is what the session store wants.
const MemoryPath = "file:pokehub?mode=memory&cache=shared"

type Config struct {
	Path string
}

func DefaultConfig() Config {
	if p := os.Getenv("POKEHUB_DB_PATH"); p != "" {
		return Config{Path: p}
	}
	return Config{Path: MemoryPath}
}

func (c Config) InMemory() bool {
	return strings.Contains(c.Path, "mode=memory") || c.Path == ":memory:"
}

func EnsureDataDir(cfg Config) error {
	if cfg.InMemory() {
		return nil
	}
	return os.MkdirAll(filepath.Dir(cfg.Path), 0o755)
}

func Open(cfg Config) (*sql.DB, error) {
	if err := EnsureDataDir(cfg); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if cfg.InMemory() {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma journal_mode: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}
