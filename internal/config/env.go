package config

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// applyEnv overlays environment variables onto the configuration. Variable
// names follow the upstream scraper conventions where one exists
// (KEY_ROTATION_STRATEGY, RATE_LIMIT_THRESHOLD as a percentage).
func (c *Config) applyEnv() {
	c.Addr = getenv("ADDR", c.Addr)
	if port := getenv("PORT", ""); port != "" {
		c.Addr = ":" + port
	}
	setToggleFromEnv("DEBUG", func(v bool) { c.Debug = v })
	c.LogFile = getenv("LOG_FILE", c.LogFile)

	c.Strategy = getenv("KEY_ROTATION_STRATEGY", c.Strategy)
	setDurationFromEnv("KEY_WINDOW", func(d time.Duration) { c.Window = Duration(d) })
	setDurationFromEnv("KEY_COOLDOWN", func(d time.Duration) { c.Cooldown = Duration(d) })
	setIntFromEnv("KEY_MIN_SAMPLES", func(n int) { c.MinSamples = n })

	// RATE_LIMIT_THRESHOLD is a percentage, e.g. "95" means 0.95.
	setIntFromEnv("RATE_LIMIT_THRESHOLD", func(n int) {
		if n <= 0 || n > 100 {
			log.Warnf("RATE_LIMIT_THRESHOLD=%d out of range (0, 100], ignoring", n)
			return
		}
		c.ErrorThreshold = float64(n) / 100
	})

	setFloatFromEnv("KEY_RATE", func(v float64) { c.KeyRate = v })
	setIntFromEnv("KEY_BURST", func(n int) { c.KeyBurst = n })

	c.KeyEnvPrefix = getenv("KEY_ENV_PREFIX", c.KeyEnvPrefix)
	c.KeySecretPrefix = getenv("KEY_SECRET_PREFIX", c.KeySecretPrefix)
	c.KeyFile = getenv("KEY_FILE", c.KeyFile)

	setDurationFromEnv("SUMMARY_INTERVAL", func(d time.Duration) { c.SummaryInterval = Duration(d) })
}
