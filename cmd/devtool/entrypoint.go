package main

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

const (
	migrateRetries    = 3
	migrateRetryDelay = 5 * time.Second
)

// EntrypointCommand is the container entrypoint: wait for the database,
// run migrations, then exec the application binary in place.
type EntrypointCommand struct{}

func (c *EntrypointCommand) Name() string {
	return "entrypoint"
}

func (c *EntrypointCommand) Description() string {
	return "Container entrypoint (wait-for-db, migrate, exec)"
}

func (c *EntrypointCommand) Run(args []string) error {
	// Inside compose the database service is reachable as "db"
	if os.Getenv("DB_HOST") == "" {
		_ = os.Setenv("DB_HOST", "db")
	}

	if err := (&WaitForDBCommand{}).Run(nil); err != nil {
		return fmt.Errorf("wait-for-db failed: %w", err)
	}

	if err := c.migrateWithRetries(); err != nil {
		return err
	}

	return c.execApp(args)
}

// migrateWithRetries retries because the database may still be settling
// right after its readiness probe passes
func (c *EntrypointCommand) migrateWithRetries() error {
	PrintHeader("Running migrations...")
	migrateCmd := &MigrateCommand{}

	var err error
	for attempt := 1; attempt <= migrateRetries; attempt++ {
		if err = migrateCmd.Run([]string{"up"}); err == nil {
			PrintSuccess("Migrations completed successfully")
			return nil
		}
		PrintWarning("Migration attempt %d failed: %v", attempt, err)
		if attempt < migrateRetries {
			time.Sleep(migrateRetryDelay)
		}
	}
	return fmt.Errorf("migrations failed after %d attempts: %w", migrateRetries, err)
}

func (c *EntrypointCommand) execApp(args []string) error {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) == 0 {
		return fmt.Errorf("no command to execute")
	}

	PrintHeader("Starting application...")
	cmdPath, err := exec.LookPath(args[0])
	if err != nil {
		return fmt.Errorf("executable not found: %w", err)
	}

	// Replaces the devtool process so the app receives container signals
	if err := syscall.Exec(cmdPath, args, os.Environ()); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	return nil
}
