// Command toastdemo is a small site showing toast delivery on full pages,
// after redirects, on htmx requests and over DataStar event streams.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/toastkit/pkg/config"
	"github.com/dmitrymomot/toastkit/pkg/cookie"
	"github.com/dmitrymomot/toastkit/pkg/httpserver"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/requestid"
	"github.com/dmitrymomot/toastkit/pkg/toast"
	"github.com/dmitrymomot/toastkit/pkg/toast/renderer"
	"github.com/dmitrymomot/toastkit/pkg/toastmetrics"
)

type appConfig struct {
	Env              string   `env:"APP_ENV" envDefault:"development"`
	Name             string   `env:"APP_NAME" envDefault:"toastdemo"`
	Store            string   `env:"TOAST_STORE" envDefault:"cookie"` // cookie, memory, redis, postgres, mongo
	MetricsNamespace string   `env:"METRICS_NAMESPACE" envDefault:"toastdemo"`
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("toastdemo stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg    appConfig
		toastCfg  toast.Config
		rendCfg   renderer.Config
		cookieCfg cookie.Config
		httpCfg   httpserver.Config
		logCfg    logger.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&toastCfg),
		config.Load(&rendCfg),
		config.Load(&cookieCfg),
		config.Load(&httpCfg),
		config.Load(&logCfg),
	); err != nil {
		return err
	}

	logOpts, err := logger.FromConfig(logCfg)
	if err != nil {
		return err
	}
	log := logger.New(append([]logger.Option{
		logger.WithEnvironment(appCfg.Env, appCfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}, logOpts...)...)
	logger.SetAsDefault(log)

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, appCfg.Store, toastCfg, cookies, log)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "toast store ready", logger.Store(appCfg.Store))

	rend, err := renderer.NewFromConfig(rendCfg, renderer.DefaultRegistry(), toastCfg, renderer.WithLogger(log))
	if err != nil {
		st.close()
		return err
	}

	metrics, err := toastmetrics.New(prometheus.DefaultRegisterer, appCfg.MetricsNamespace)
	if err != nil {
		st.close()
		return err
	}

	toasts := toast.NewFromConfig(toastCfg, st.store,
		toast.WithLogger(log),
		toast.WithObserver(metrics),
	)

	a := &app{
		log:      log,
		toasts:   toasts,
		rend:     rend,
		assets:   rendCfg.AssetsPath,
		cors:     toast.CORSOptions(cors.Options{AllowedOrigins: appCfg.AllowedOrigins}, toastCfg),
		gatherer: prometheus.DefaultGatherer,
		checks:   st.checks,
	}

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithShutdownHook(st.close),
	)
	return srv.Run(ctx, a.routes())
}
