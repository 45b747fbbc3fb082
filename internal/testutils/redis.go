package testutils

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/KirkDiggler/spellbook/internal/config"
)

// testRedisDB keeps tests away from the database the duel command uses
const testRedisDB = 15

// DefaultTestRedisConfig returns the Redis configuration tests connect
// with. TEST_REDIS_ADDR overrides the address.
func DefaultTestRedisConfig() *config.RedisConfig {
	cfg := config.Default().Redis
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	cfg.DB = testRedisDB
	return &cfg
}

// CreateTestRedisClient connects to a flushed test database, skipping the
// test when Redis is not reachable
func CreateTestRedisClient(t *testing.T, cfg *config.RedisConfig) redis.UniversalClient {
	t.Helper()
	if cfg == nil {
		cfg = DefaultTestRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	err := client.FlushDB(ctx).Err()
	require.NoError(t, err, "Failed to flush test Redis database")

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}

// CreateTestRedisClientOrSkip creates a Redis client or skips the test if Redis is not available
func CreateTestRedisClientOrSkip(t *testing.T) redis.UniversalClient {
	t.Helper()
	return CreateTestRedisClient(t, nil)
}

// CreateTestRedisClientOrContainer uses the local test database when it
// answers and otherwise starts a throwaway Redis container. The test is
// skipped when neither is available.
func CreateTestRedisClientOrContainer(t *testing.T) redis.UniversalClient {
	t.Helper()

	cfg := DefaultTestRedisConfig()
	if WaitForRedis(cfg.Addr, time.Second) != nil {
		cfg.Addr = StartRedisContainer(t)
		cfg.DB = 0
	}
	return CreateTestRedisClient(t, cfg)
}

// StartRedisContainer runs redis:7-alpine and returns its address. The
// container is terminated when the test ends.
func StartRedisContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Docker not available for a Redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminating redis container: %v", err)
		}
	})

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err, "Failed to get redis container endpoint")
	return addr
}

// WaitForRedis waits for Redis to be ready or times out
func WaitForRedis(addr string, timeout time.Duration) error {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   testRedisDB,
	})
	defer client.Close()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		err := client.Ping(ctx).Err()
		cancel()

		if err == nil {
			return nil
		}

		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("redis not ready after %v", timeout)
}
