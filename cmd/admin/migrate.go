package main

import (
	"database/sql"
	"errors"
	"time"

	"tourneypoker-server/pkg/db"
)

// MigrateCmd runs the migrations once the database is reachable
type MigrateCmd struct {
	Wait time.Duration `default:"10s" help:"How long to wait for the database"`
}

// Run waits for the database and migrates it
func (m *MigrateCmd) Run() error {
	if err := waitForDB(m.Wait); err != nil {
		return err
	}

	db.Migrate()
	return nil
}

func waitForDB(wait time.Duration) error {
	timeout := time.NewTimer(wait)
	defer timeout.Stop()

	for {
		select {
		case <-timeout.C:
			return errors.New("could not connect to database")
		default:
			dbh := func() *sql.DB {
				defer func() { _ = recover() }()
				return db.Instance()
			}()

			if dbh != nil {
				return nil
			}

			time.Sleep(time.Millisecond * 500)
		}
	}
}
