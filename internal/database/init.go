package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

type Database struct {
	dbName      string
	MysqlClient *sql.DB
}

func NewDatabase(client *sql.DB, dbName string) (*Database, error) {
	return &Database{
		dbName:      dbName,
		MysqlClient: client,
	}, nil
}

// CreateDatabaseAndTables bootstraps the database and applies every file in
// migrations/ in name order.
func (d *Database) CreateDatabaseAndTables() error {
	if _, err := d.MysqlClient.Exec(`CREATE DATABASE IF NOT EXISTS ` + d.dbName); err != nil {
		return fmt.Errorf("failed to create db %s: %w", d.dbName, err)
	}

	if _, err := d.MysqlClient.Exec(`USE ` + d.dbName); err != nil {
		return fmt.Errorf("failed to use db %s: %w", d.dbName, err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	path := filepath.Join(wd, "migrations")

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	for _, e := range entries {
		c, err := os.ReadFile(filepath.Join(path, e.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", e.Name(), err)
		}

		if _, err := d.MysqlClient.Exec(string(c)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", e.Name(), err)
		}
	}

	return nil
}
