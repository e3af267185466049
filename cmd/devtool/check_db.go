package main

import (
	"fmt"
	"strings"
	"time"
)

const (
	dbReadyAttempts = 30
	dbReadyInterval = time.Second
)

type CheckDBCommand struct{}

func (c *CheckDBCommand) Name() string {
	return "check-db"
}

func (c *CheckDBCommand) Description() string {
	return "Check if database is running and ready"
}

func (c *CheckDBCommand) Run(args []string) error {
	PrintHeader("Checking Docker database status...")

	if err := runCommand("docker", "compose", "version"); err != nil {
		return fmt.Errorf("docker compose not found. Please install Docker Compose")
	}

	if c.serviceRunning() {
		PrintSuccess("Database is already running")
	} else {
		if err := c.startService(); err != nil {
			return err
		}
	}

	PrintSuccess("Database check complete")
	return nil
}

func (c *CheckDBCommand) serviceRunning() bool {
	out, err := getCommandOutput("docker", "compose", "ps", "db")
	if err != nil {
		return false
	}
	status := strings.ToLower(out)
	return strings.Contains(status, "up") || strings.Contains(status, "running")
}

func (c *CheckDBCommand) startService() error {
	PrintInfo("Starting database...")
	if err := runCommandVerbose("docker", "compose", "up", "-d", "db"); err != nil {
		return fmt.Errorf("error starting database: %v", err)
	}

	dbUser := getEnv("DB_USER", "dev")
	dbName := getEnv("DB_NAME", "commu")

	PrintInfo("Waiting for database to be ready...")
	for attempt := 1; attempt <= dbReadyAttempts; attempt++ {
		if runCommand("docker", "compose", "exec", "-T", "db", "pg_isready", "-U", dbUser, "-d", dbName) == nil {
			PrintSuccess("Database is ready")
			return nil
		}
		fmt.Printf("Waiting for database... (%d/%d)\n", attempt, dbReadyAttempts)
		time.Sleep(dbReadyInterval)
	}

	PrintError("Database failed to start after %d seconds", dbReadyAttempts)
	_ = runCommandVerbose("docker", "compose", "logs", "db")
	return fmt.Errorf("database failed to start")
}
