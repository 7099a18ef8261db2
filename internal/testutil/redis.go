package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCandidates are probed in order when REDIS_ADDR is unset.
var redisCandidates = []string{"localhost:56379", "redis:6379", "localhost:6379"}

// GetTestRedisAddr returns the first reachable Redis address.
func GetTestRedisAddr(t TestingTB) (string, bool) {
	t.Helper()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr, pingRedis(t, addr)
	}
	for _, addr := range redisCandidates {
		if pingRedis(t, addr) {
			return addr, true
		}
	}
	return redisCandidates[0], false
}

func pingRedis(t TestingTB, addr string) bool {
	c := redis.NewClient(&redis.Options{Addr: addr})
	defer closeAndLog(t, "redis probe", c)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		t.Logf("redis not available at %s: %v", addr, err)
		return false
	}
	return true
}

// SetupTestRedis returns a client on an empty, reserved database index.
// Packages run in parallel, so each reserves its own index through a lock key
// kept in DB 0 where FlushDB on the test index cannot remove it.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()
	addr, ok := GetTestRedisAddr(t)
	if !ok {
		if requireRedis() {
			t.Fatal("redis not available for testing")
		}
		t.Skip("redis not available for testing")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: reserveRedisDB(t, addr)})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		closeAndLog(t, "redis client", client)
		t.Fatalf("flush test redis db: %v", err)
	}
	onCleanup(t, func() { closeAndLog(t, "redis client", client) })
	return client
}

func reserveRedisDB(t TestingTB, addr string) int {
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
		t.Logf("ignoring invalid TEST_REDIS_DB=%q", v)
	}

	meta := redis.NewClient(&redis.Options{Addr: addr, DB: 0})
	defer closeAndLog(t, "redis meta client", meta)

	for i := 1; i <= 15; i++ {
		key := fmt.Sprintf("learnsphere:testutil:db_lock:%d", i)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		ok, err := meta.SetNX(ctx, key, strconv.Itoa(os.Getpid()), 30*time.Minute).Result()
		cancel()
		if err != nil || !ok {
			continue
		}
		onCleanup(t, func() { releaseRedisDB(t, addr, key) })
		return i
	}
	t.Logf("no free redis db index, falling back to 1")
	return 1
}

func releaseRedisDB(t TestingTB, addr, key string) {
	c := redis.NewClient(&redis.Options{Addr: addr, DB: 0})
	defer closeAndLog(t, "redis cleanup client", c)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Del(ctx, key).Err(); err != nil {
		t.Logf("warning: release redis db lock %s: %v", key, err)
	}
}
