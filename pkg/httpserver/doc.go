// Package httpserver runs the HTTP front of a toast-enabled application with
// graceful shutdown.
//
// Server.Run listens on the configured address and blocks until the context
// is cancelled or SIGINT/SIGTERM arrives, then drains in-flight requests
// within the shutdown timeout and runs the registered shutdown hooks, where
// redirect store backends and database pools are closed. The default write
// timeout is zero so DataStar event streams are not cut off.
//
// HealthCheckHandler exposes liveness and readiness probes over named
// dependency checks such as redis.Healthcheck or pg.Healthcheck.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithShutdownHook(func() { _ = backend.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Start errors wrap ErrStart and shutdown errors wrap ErrShutdown.
package httpserver
