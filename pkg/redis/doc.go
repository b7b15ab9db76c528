// Package redis connects to Redis with retries and exposes a health probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	backend := flashstore.NewRedis(client)
//
// Config is populated from REDIS_* environment variables through pkg/config.
package redis
