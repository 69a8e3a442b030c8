package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"keypool-go/internal/config"
	"keypool-go/internal/credential"
	"keypool-go/internal/logging"
	"keypool-go/internal/pool"
	"keypool-go/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	cfg := config.Load(*configPath)
	if *debug {
		cfg.Debug = true
	}
	if err := logging.Setup(cfg); err != nil {
		log.WithError(err).Fatal("failed to configure logging")
	}

	log.Infof("Starting keypool (config: %s)", *configPath)

	p, err := buildPool(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to build credential pool")
	}

	if cfg.KeyFile != "" {
		w := credential.WatchFile(cfg.KeyFile, nil)
		defer w.Stop()
	}

	stopSummary := startSummaryLoop(p, cfg.SummaryInterval.Std())
	defer stopSummary()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewRouter(p, cfg.Debug),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("Stats server listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("stats server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("stats server shutdown failed")
	}

	logSummary(p)
}

// buildPool assembles credentials from all configured sources and wraps
// them in a rotation pool.
func buildPool(cfg *config.Config) (*pool.Pool, error) {
	ctx := context.Background()

	sources := []credential.Source{
		credential.NewEnvSource(cfg.KeyEnvPrefix, cfg.KeySecretPrefix),
	}
	if cfg.KeyFile != "" {
		sources = append(sources, credential.NewFileSource(cfg.KeyFile))
	}

	var creds []credential.Credential
	for _, src := range sources {
		loaded, err := src.Load(ctx)
		if err != nil {
			log.WithError(err).Warnf("credential source %q failed", src.Name())
			continue
		}
		creds = append(creds, loaded...)
	}

	store, err := credential.NewStoreFrom(creds)
	if err != nil {
		return nil, err
	}

	strategy, err := pool.ParseStrategy(cfg.Strategy)
	if err != nil {
		log.WithError(err).Warn("falling back to round_robin strategy")
	}

	return pool.NewFromStore(store,
		pool.WithStrategy(strategy),
		pool.WithWindow(cfg.Window.Std()),
		pool.WithCooldown(cfg.Cooldown.Std()),
		pool.WithMinSamples(cfg.MinSamples),
		pool.WithErrorThreshold(cfg.ErrorThreshold),
		pool.WithKeyRate(cfg.KeyRate, cfg.KeyBurst),
	)
}

// startSummaryLoop periodically writes the usage summary to the log.
// Returns a stop function; a non-positive interval disables the loop.
func startSummaryLoop(p *pool.Pool, interval time.Duration) func() {
	if interval <= 0 {
		return func() {}
	}
	stopCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				logSummary(p)
			case <-stopCh:
				return
			}
		}
	}()
	return func() { close(stopCh) }
}

func logSummary(p *pool.Pool) {
	for _, line := range server.SummaryLines(p.Stats()) {
		log.Info(line)
	}
}
