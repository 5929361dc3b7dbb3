// Package redis provides connection management for the redis-backed
// credential store: URL-based configuration, bounded retry on dial and a
// readiness probe.
//
// Example:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  5 * time.Second,
//		ConnectTimeout: 30 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	store := credstore.NewRedisStore(client, "authkit")
package redis
