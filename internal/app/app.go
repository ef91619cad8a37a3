package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/adapters"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/adapters/cache"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/adapters/httpclient"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/adapters/memory"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/adapters/postgres"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/api"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/config"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/platform/db"
	httpserver "github.com/RusoMDK/Tienda-Virtual-sub002/internal/platform/http"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/rate"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/rate/handler"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, initial reads)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	knownCodes := codeSet(appCfg.Source.KnownCodes)
	if len(knownCodes) == 0 {
		err = errors.New("no known currency codes configured")
		logrus.WithError(err).Error("Failed to load currency codes")
		return err
	}
	publicCodes := codeSet(appCfg.Source.PublicCodes)
	logrus.Info("✅ Currency code sets loaded")

	// Rate store: Postgres when configured, in-memory otherwise
	var store adapters.RateStore
	if appCfg.DbServer.Host != "" {
		pool, poolErr := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
		if poolErr != nil {
			logrus.WithError(poolErr).Error("Error connecting to db")
			return poolErr
		}
		defer pool.Close()
		store = postgres.NewRateStore(pool)
		logrus.Info("✅ Postgres connection successful")
	} else {
		store = memory.NewRateStore()
		logrus.Warn("No database configured, rates will not survive restarts")
	}

	snapshotCache, err := cache.NewRatesSnapshotCache(16)
	if err != nil {
		logrus.WithError(err).Error("Failed to create rates cache")
		return err
	}
	defer snapshotCache.Close()

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 8 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// Upstream sources; both may be nil, refresh then reports not-configured
	var mirror, scraper adapters.SourceClient
	if url := strings.TrimSpace(appCfg.Source.MirrorURL); url != "" {
		mirror = httpclient.NewSourceClient(baseHTTPClient, url)
	}
	if url := strings.TrimSpace(appCfg.Source.ScrapeURL); url != "" {
		scraper = httpclient.NewSourceClient(baseHTTPClient, url)
	}

	// Services
	rateValidator := rate.NewValidator(knownCodes)
	rateService := rate.NewService(store, snapshotCache, rateValidator, publicCodes, mirror, scraper)
	scheduler := rate.NewScheduler(rateService, time.Duration(appCfg.Scheduler.IntervalHours)*time.Hour)
	// Ensure scheduler stops before the store goes away
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	rateHandler := handler.NewRateHandler(rateService)
	router := api.NewRouter(rateHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// codeSet normalizes configured codes; the base currency is implicit and
// never tracked as a fetchable code.
func codeSet(codes []string) map[string]struct{} {
	m := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || c == domain.BaseCurrency {
			continue
		}
		m[c] = struct{}{}
	}
	return m
}
