package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection; sessions degrade to JWT-only when redis is down
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis at %s: %v", addr, err)
		return
	}
	fmt.Println("✅ Connected to Redis")
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

// SetSession stores the server-side login record. It backs the identity
// resolver when a token's claims are incomplete; the token always wins.
func SetSession(userID uint, role string, ttl time.Duration) error {
	if Client == nil {
		return fmt.Errorf("redis not initialized")
	}
	return Client.Set(Ctx, sessionKey(userID), role, ttl).Err()
}

// GetSessionRole returns the stored role for a user, or "" when no
// session record exists.
func GetSessionRole(userID uint) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("redis not initialized")
	}
	role, err := Client.Get(Ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return role, err
}

// ClearSession drops the login record on logout.
func ClearSession(userID uint) error {
	if Client == nil {
		return nil
	}
	return Client.Del(Ctx, sessionKey(userID)).Err()
}
