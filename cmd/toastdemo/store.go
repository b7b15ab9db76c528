package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/config"
	"github.com/dmitrymomot/toastkit/pkg/cookie"
	"github.com/dmitrymomot/toastkit/pkg/flashstore"
	"github.com/dmitrymomot/toastkit/pkg/httpserver"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/mongo"
	"github.com/dmitrymomot/toastkit/pkg/pg"
	"github.com/dmitrymomot/toastkit/pkg/redis"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

var errUnknownStore = errors.New("toastdemo: unknown TOAST_STORE")

const flashCollection = "toast_flash"

// storeSetup is the redirect store with its readiness checks and cleanup.
type storeSetup struct {
	store  toast.Store
	checks []httpserver.Check
	close  func()
}

func openStore(ctx context.Context, kind string, cfg toast.Config, cookies *cookie.Manager, log *slog.Logger) (storeSetup, error) {
	server := func(b toast.Backend) toast.Store {
		return toast.NewServerStore(b, cookies, cfg.ScopeCookie, cfg.TTL)
	}

	switch kind {
	case "cookie":
		return storeSetup{
			store: toast.NewCookieStore(cookies, cfg.FlashCookie, cfg.TTL),
			close: func() {},
		}, nil

	case "memory":
		b := toast.NewMemoryBackend(time.Minute)
		return storeSetup{
			store: server(b),
			close: func() { _ = b.Close() },
		}, nil

	case "redis":
		var rc redis.Config
		if err := config.Load(&rc); err != nil {
			return storeSetup{}, err
		}
		client, err := redis.Connect(ctx, rc)
		if err != nil {
			return storeSetup{}, err
		}
		return storeSetup{
			store:  server(flashstore.NewRedis(client)),
			checks: []httpserver.Check{{Name: "redis", Probe: redis.Healthcheck(client)}},
			close:  func() { _ = client.Close() },
		}, nil

	case "postgres":
		var pc pg.Config
		if err := config.Load(&pc); err != nil {
			return storeSetup{}, err
		}
		pool, err := pg.Connect(ctx, pc)
		if err != nil {
			return storeSetup{}, err
		}
		if err := pg.Migrate(ctx, pool, pc, flashstore.Migrations(), log); err != nil {
			pool.Close()
			return storeSetup{}, err
		}
		b := flashstore.NewPostgres(pool)
		janitorCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
		go sweep(janitorCtx, b, time.Minute, log)
		return storeSetup{
			store:  server(b),
			checks: []httpserver.Check{{Name: "postgres", Probe: pg.Healthcheck(pool)}},
			close: func() {
				stop()
				pool.Close()
			},
		}, nil

	case "mongo":
		var mc mongo.Config
		if err := config.Load(&mc); err != nil {
			return storeSetup{}, err
		}
		db, err := mongo.NewWithDatabase(ctx, mc, "")
		if err != nil {
			return storeSetup{}, err
		}
		b, err := flashstore.NewMongo(ctx, db.Collection(flashCollection))
		if err != nil {
			_ = db.Client().Disconnect(context.WithoutCancel(ctx))
			return storeSetup{}, err
		}
		return storeSetup{
			store:  server(b),
			checks: []httpserver.Check{{Name: "mongo", Probe: mongo.Healthcheck(db.Client())}},
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = db.Client().Disconnect(ctx)
			},
		}, nil
	}

	return storeSetup{}, fmt.Errorf("%w: %q", errUnknownStore, kind)
}

// sweep removes expired rows until ctx is done. Expired rows are never
// returned by Pop, so this only bounds table growth.
func sweep(ctx context.Context, b *flashstore.Postgres, every time.Duration, log *slog.Logger) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := b.DeleteExpired(ctx)
			if err != nil {
				log.WarnContext(ctx, "failed to sweep expired toasts", logger.Error(err))
				continue
			}
			if n > 0 {
				log.DebugContext(ctx, "swept expired toasts", logger.Count(int(n)))
			}
		}
	}
}
