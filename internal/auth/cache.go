package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-admin-dashboard/internal/logger"
)

const verifyCacheKeyPrefix = "admin_auth:verify:"

// VerifyCache caches successful token verifications in Redis so repeated
// dashboard requests skip the verifier. Failures are never cached.
type VerifyCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewVerifyCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *VerifyCache {
	return &VerifyCache{client: client, ttl: ttl, logger: log}
}

// cacheKey hashes the token so raw credentials never land in Redis.
func cacheKey(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return verifyCacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached client for a token, or nil on miss.
func (c *VerifyCache) Get(ctx context.Context, rawToken string) *Client {
	if c == nil || c.client == nil {
		return nil
	}

	val, err := c.client.Get(ctx, cacheKey(rawToken)).Result()
	if err != nil {
		return nil
	}

	var client Client
	if err := json.Unmarshal([]byte(val), &client); err != nil {
		if c.logger != nil {
			c.logger.Warn("AUTH", "Discarding unreadable cached verification entry")
		}
		return nil
	}
	return &client
}

// Set stores a verified client under the token's hash. Cache errors are
// logged and swallowed; verification already succeeded.
func (c *VerifyCache) Set(ctx context.Context, rawToken string, client *Client) {
	if c == nil || c.client == nil || client == nil {
		return
	}

	payload, err := json.Marshal(client)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, cacheKey(rawToken), payload, c.ttl).Err(); err != nil {
		if c.logger != nil {
			c.logger.Warn("AUTH", "Failed to cache verification result: "+err.Error())
		}
	}
}

// InitializeAuthCache connects to Redis for verification caching and tests
// the connection.
func InitializeAuthCache(redisAddr string, customLogger *logger.Logger) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: "",
		DB:       0,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		if customLogger != nil {
			customLogger.Error("AUTH", "Failed to connect to Redis at "+redisAddr+": "+err.Error())
		}
		return nil, err
	}

	if customLogger != nil {
		customLogger.Info("AUTH", "Connected to Redis at "+redisAddr+" for auth caching")
	}
	return redisClient, nil
}
