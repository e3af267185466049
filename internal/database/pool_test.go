package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/devjjun/commu/internal/testing/leaktest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

// requireDB skips the test when no database container is available
func requireDB(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping: no database container available")
	}
}

func TestPoolConfig_WithDefaults(t *testing.T) {
	t.Run("Zero Value Gets All Defaults", func(t *testing.T) {
		cfg := PoolConfig{}.withDefaults()

		assert.Equal(t, int32(defaultMaxConns), cfg.MaxConns)
		assert.Equal(t, int32(defaultMinConns), cfg.MinConns)
		assert.Equal(t, defaultMaxIdleTime, cfg.MaxIdleTime)
		assert.Equal(t, defaultMaxLifetime, cfg.MaxLifetime)
	})

	t.Run("Explicit Values Are Kept", func(t *testing.T) {
		cfg := PoolConfig{
			MaxConns:    25,
			MinConns:    5,
			MaxIdleTime: time.Minute,
			MaxLifetime: time.Hour,
		}.withDefaults()

		assert.Equal(t, int32(25), cfg.MaxConns)
		assert.Equal(t, int32(5), cfg.MinConns)
		assert.Equal(t, time.Minute, cfg.MaxIdleTime)
		assert.Equal(t, time.Hour, cfg.MaxLifetime)
	})

	t.Run("Min Conns Clamped To Max Conns", func(t *testing.T) {
		// A tiny pool must not warm more connections than it may hold
		cfg := PoolConfig{MaxConns: 1}.withDefaults()

		assert.Equal(t, int32(1), cfg.MaxConns)
		assert.Equal(t, int32(1), cfg.MinConns)
	})
}

func TestNewPool_RejectsMalformedConnString(t *testing.T) {
	_, err := NewPool(context.Background(), "://not-a-conn-string", PoolConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse connection string")
}

func TestNewPool_AppliesDefaults(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, testDBConnString, PoolConfig{})
	require.NoError(t, err)
	defer pool.Close()

	assert.Equal(t, int32(defaultMaxConns), pool.Config().MaxConns)
	assert.Equal(t, int32(defaultMinConns), pool.Config().MinConns)

	var one int
	require.NoError(t, pool.QueryRow(ctx, "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestNewPool_ExhaustedPoolRecoversOnRelease(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, testDBConnString, PoolConfig{MaxConns: 2, MinConns: 1})
	require.NoError(t, err)
	defer pool.Close()

	first, err := pool.Acquire(ctx)
	require.NoError(t, err)
	second, err := pool.Acquire(ctx)
	require.NoError(t, err)

	// Pool is full, a third acquire must block until something is returned
	blockedCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = pool.Acquire(blockedCtx)
	require.Error(t, err)

	first.Release()

	third, err := pool.Acquire(ctx)
	require.NoError(t, err)
	third.Release()
	second.Release()
}

func TestNewPool_ConcurrentQueriesReleaseConnections(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	checker := leaktest.NewGoroutineChecker(t)

	pool, err := NewPool(ctx, testDBConnString, PoolConfig{MaxConns: 4})
	require.NoError(t, err)

	const workers = 16
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var n int
			errs <- pool.QueryRow(ctx, "SELECT 1").Scan(&n)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	// Every connection must be back in the pool once the burst is done
	assert.Eventually(t, func() bool {
		return pool.Stat().AcquiredConns() == 0
	}, time.Second, 10*time.Millisecond)

	pool.Close()
	checker.Check(2)
}
