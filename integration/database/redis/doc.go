// Package redis connects to Redis and persists visitor preferences in it.
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//		RetryAttempts: 3,
//		RetryInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redis.NewPreferenceStore(client, "contactform:", 365*24*time.Hour)
//	theme, err := preference.NewTheme(ctx, preference.Prefixed(store, visitorID+":"), false)
//
// Connect retries the initial ping with exponential backoff and fails with
// ErrRedisNotReady when Redis stays unreachable. Healthcheck returns a ping
// function suitable for readiness checks.
package redis
