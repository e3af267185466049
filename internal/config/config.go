package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	LogLevel       string
	LogFormat      string
	Environment    string
	APIKey         string   // API key for authentication
	TrustedProxies []string // proxies whose X-Forwarded-For we believe

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Lock service
	LockWaitTime  time.Duration // max time a caller blocks waiting for a lock
	LockLeaseTime time.Duration // lock auto-expiry, guards against crashed holders

	// Mail queue / worker
	QueuePollInterval   time.Duration
	MailLeaseTime       time.Duration // in-flight visibility lease, must outlast a slow delivery
	MaxDeliveryAttempts int

	// Attendance rewards
	AttendanceBaseAmount int
	StreakBonusAmount    int
	StreakLength         int

	// Activity rewards (post/comment writing)
	PostWriteAmount    int
	CommentWriteAmount int
	ActivityDailyCap   int // max rewarded entries per type per day

	// Outbound mail
	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		APIKey:      getEnv("API_KEY", ""),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "commu"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "25"),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@commu.dev"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	lockWaitSec, err := getEnvInt("LOCK_WAIT_TIME_SECONDS", DefaultLockWaitSeconds)
	if err != nil {
		return nil, err
	}
	cfg.LockWaitTime = time.Duration(lockWaitSec) * time.Second

	lockLeaseSec, err := getEnvInt("LOCK_LEASE_TIME_SECONDS", DefaultLockLeaseSeconds)
	if err != nil {
		return nil, err
	}
	cfg.LockLeaseTime = time.Duration(lockLeaseSec) * time.Second

	pollMs, err := getEnvInt("QUEUE_POLL_INTERVAL_MS", DefaultQueuePollIntervalMs)
	if err != nil {
		return nil, err
	}
	cfg.QueuePollInterval = time.Duration(pollMs) * time.Millisecond

	mailLeaseSec, err := getEnvInt("MAIL_LEASE_TIME_SECONDS", DefaultMailLeaseSeconds)
	if err != nil {
		return nil, err
	}
	cfg.MailLeaseTime = time.Duration(mailLeaseSec) * time.Second

	cfg.MaxDeliveryAttempts, err = getEnvInt("MAX_DELIVERY_ATTEMPTS", DefaultMaxDeliveryAttempts)
	if err != nil {
		return nil, err
	}

	cfg.AttendanceBaseAmount, err = getEnvInt("DAILY_ATTENDANCE_BASE_AMOUNT", DefaultAttendanceBaseAmount)
	if err != nil {
		return nil, err
	}

	cfg.StreakBonusAmount, err = getEnvInt("STREAK_BONUS_AMOUNT", DefaultStreakBonusAmount)
	if err != nil {
		return nil, err
	}

	cfg.StreakLength, err = getEnvInt("STREAK_LENGTH_DAYS", DefaultStreakLengthDays)
	if err != nil {
		return nil, err
	}

	cfg.PostWriteAmount, err = getEnvInt("POST_WRITE_AMOUNT", DefaultPostWriteAmount)
	if err != nil {
		return nil, err
	}

	cfg.CommentWriteAmount, err = getEnvInt("COMMENT_WRITE_AMOUNT", DefaultCommentWriteAmount)
	if err != nil {
		return nil, err
	}

	cfg.ActivityDailyCap, err = getEnvInt("ACTIVITY_DAILY_CAP", DefaultActivityDailyCap)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks invariants on loaded values
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.LockWaitTime <= 0 {
		return fmt.Errorf("LOCK_WAIT_TIME_SECONDS must be positive")
	}
	if c.LockLeaseTime <= c.LockWaitTime {
		return fmt.Errorf("LOCK_LEASE_TIME_SECONDS must exceed LOCK_WAIT_TIME_SECONDS")
	}
	if c.MaxDeliveryAttempts <= 0 {
		return fmt.Errorf("MAX_DELIVERY_ATTEMPTS must be positive")
	}
	if c.MailLeaseTime <= c.QueuePollInterval {
		return fmt.Errorf("MAIL_LEASE_TIME_SECONDS must exceed the queue poll interval")
	}
	if c.AttendanceBaseAmount <= 0 {
		return fmt.Errorf("DAILY_ATTENDANCE_BASE_AMOUNT must be positive")
	}
	if c.StreakBonusAmount < 0 {
		return fmt.Errorf("STREAK_BONUS_AMOUNT must not be negative")
	}
	if c.StreakLength < 2 {
		return fmt.Errorf("STREAK_LENGTH_DAYS must be at least 2")
	}
	if c.PostWriteAmount <= 0 || c.CommentWriteAmount <= 0 {
		return fmt.Errorf("POST_WRITE_AMOUNT and COMMENT_WRITE_AMOUNT must be positive")
	}
	if c.ActivityDailyCap <= 0 {
		return fmt.Errorf("ACTIVITY_DAILY_CAP must be positive")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
