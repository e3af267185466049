package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	waitForDBAttempts = 30
	waitForDBInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	dbURL := dbURLFromEnv()

	for attempt := 1; attempt <= waitForDBAttempts; attempt++ {
		err := pingOnce(dbURL)
		if err == nil {
			PrintSuccess("Database is ready")
			return nil
		}
		fmt.Printf("Database not ready (%d/%d): %v\n", attempt, waitForDBAttempts, err)
		time.Sleep(waitForDBInterval)
	}

	return fmt.Errorf("database failed to become ready after %d attempts", waitForDBAttempts)
}

func pingOnce(dbURL string) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping()
}
