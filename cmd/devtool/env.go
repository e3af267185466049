package main

import (
	"fmt"
	"net/url"
	"os"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// dbURLFromEnv builds a Postgres connection string from DB_URL or the
// individual DB_* variables, with the same defaults docker-compose uses.
func dbURLFromEnv() string {
	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		return dbURL
	}

	dbUser := getEnv("DB_USER", "dev")
	dbPass := getEnv("DB_PASSWORD", "change_this_secure_password")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "commu")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
}

// redactPassword masks the password portion of a connection string for logging.
func redactPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return connStr
	}
	if _, hasPass := u.User.Password(); hasPass {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
