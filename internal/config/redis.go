package config

// Redis backs distributed rate limiting and caching of public catalog
// responses.  Connection parameters come from environment variables; when no
// server is reachable at startup the constructor returns nil and callers
// degrade gracefully by disabling both features.

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from the environment:
//
//	REDIS_ADDR     – host:port (REDIS_HOST + REDIS_PORT take precedence)
//	REDIS_PASSWORD – optional password
//	REDIS_DB       – database number, default 0
//	REDIS_TLS      – enable TLS when "true" or "1"
//
// The returned client is nil if the initial ping fails.
func NewRedisClient() *redis.Client {
	opts := &redis.Options{
		Addr:     redisAddr(),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB(),
	}
	if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

func redisAddr() string {
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		return host + ":" + port
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func redisDB() int {
	if s := os.Getenv("REDIS_DB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 0
}
