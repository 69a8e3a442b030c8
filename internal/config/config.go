package config

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the daemon's runtime configuration. Values are resolved in
// order: built-in defaults, then the optional YAML file, then environment
// variables.
type Config struct {
	Addr    string `yaml:"addr"`
	Debug   bool   `yaml:"debug"`
	LogFile string `yaml:"log_file"`

	// Rotation pool tuning.
	Strategy       string   `yaml:"strategy"`
	Window         Duration `yaml:"window"`
	Cooldown       Duration `yaml:"cooldown"`
	MinSamples     int      `yaml:"min_samples"`
	ErrorThreshold float64  `yaml:"error_threshold"`

	// Optional per-key pacing (adaptive strategy only).
	KeyRate  float64 `yaml:"key_rate"`
	KeyBurst int     `yaml:"key_burst"`

	// Credential sources.
	KeyEnvPrefix    string `yaml:"key_env_prefix"`
	KeySecretPrefix string `yaml:"key_secret_prefix"`
	KeyFile         string `yaml:"key_file"`

	// How often the usage summary is written to the log. Zero disables it.
	SummaryInterval Duration `yaml:"summary_interval"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Addr:            ":8080",
		Strategy:        "round_robin",
		Window:          Duration(time.Hour),
		Cooldown:        Duration(time.Hour),
		MinSamples:      5,
		ErrorThreshold:  0.5,
		KeyEnvPrefix:    "API_KEY",
		SummaryInterval: Duration(10 * time.Minute),
	}
}

// Load resolves the configuration. A missing file is not an error; the
// defaults plus environment are enough to run.
func Load(path string) *Config {
	cfg := Defaults()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if os.IsNotExist(err) {
				log.Debugf("No config file at %s, using defaults", path)
			} else {
				log.WithError(err).Warnf("Failed to load config file %s, continuing with defaults", path)
			}
		} else {
			log.Infof("Loaded configuration from %s", path)
		}
	}

	cfg.applyEnv()
	cfg.sanitize()
	return cfg
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// sanitize clamps out-of-range values back to their defaults rather than
// failing startup over a tuning knob.
func (c *Config) sanitize() {
	def := Defaults()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.Window <= 0 {
		c.Window = def.Window
	}
	if c.Cooldown <= 0 {
		c.Cooldown = def.Cooldown
	}
	if c.MinSamples <= 0 {
		c.MinSamples = def.MinSamples
	}
	if c.ErrorThreshold <= 0 || c.ErrorThreshold > 1 {
		log.Warnf("error_threshold %.2f out of range (0, 1], using %.2f", c.ErrorThreshold, def.ErrorThreshold)
		c.ErrorThreshold = def.ErrorThreshold
	}
	if c.KeyRate < 0 {
		c.KeyRate = 0
	}
	if c.KeyRate > 0 && c.KeyBurst <= 0 {
		c.KeyBurst = 1
	}
	if c.KeyEnvPrefix == "" {
		c.KeyEnvPrefix = def.KeyEnvPrefix
	}
	if c.SummaryInterval < 0 {
		c.SummaryInterval = 0
	}
}
