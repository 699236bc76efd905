// Package dbpkg provides helpers to make db initialization and testing easier.
package dbpkg

import (
	"database/sql"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// Setup sets up connection with database.
func Setup(driver, source string) (*sql.DB, error) {
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// SetupPebble opens the pebble key-value store located in dir.
func SetupPebble(dir string) (*pebble.DB, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", dir, err)
	}

	return db, nil
}

// SetupMemPebble opens pebble on top of an in-memory filesystem.
// Nothing is written to disk, which makes it suitable for tests.
func SetupMemPebble() (*pebble.DB, error) {
	return pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
}
