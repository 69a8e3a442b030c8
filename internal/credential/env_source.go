package credential

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// maxNumberedKeys bounds the numbered-variable scan. Upstream free tiers
// make more than a handful of keys pointless.
const maxNumberedKeys = 9

// EnvSource loads API keys from environment variables. Three layouts are
// supported, checked in order until one yields keys:
//
//  1. Numbered: <PREFIX>_1, <PREFIX>_2, ... <PREFIX>_9
//  2. Combined: <PREFIX>S=key1|key2|key3
//  3. Single:   <PREFIX>
type EnvSource struct {
	prefix         string
	requiredPrefix string
}

// NewEnvSource creates an environment credential source. prefix is the base
// variable name (default "API_KEY"). requiredPrefix, when non-empty, rejects
// secrets that do not start with it (e.g. "AIza" for Google API keys).
func NewEnvSource(prefix, requiredPrefix string) *EnvSource {
	if prefix == "" {
		prefix = "API_KEY"
	}
	return &EnvSource{prefix: prefix, requiredPrefix: requiredPrefix}
}

// Name returns the source identifier.
func (s *EnvSource) Name() string {
	return "env"
}

// Load retrieves all credentials from the environment.
func (s *EnvSource) Load(_ context.Context) ([]Credential, error) {
	creds := s.loadNumbered()

	if len(creds) == 0 {
		creds = s.loadCombined()
	}

	if len(creds) == 0 {
		if secret := os.Getenv(s.prefix); s.usable(secret) {
			creds = append(creds, Credential{
				ID:     "env-1",
				Secret: strings.TrimSpace(secret),
				Status: StatusActive,
			})
		}
	}

	if len(creds) == 0 {
		log.Warnf("No valid API keys found under %s environment variables", s.prefix)
		return nil, nil
	}

	log.Infof("Loaded %d API key(s) from environment variables", len(creds))
	return creds, nil
}

func (s *EnvSource) loadNumbered() []Credential {
	creds := make([]Credential, 0, maxNumberedKeys)
	for i := 1; i <= maxNumberedKeys; i++ {
		secret := os.Getenv(fmt.Sprintf("%s_%d", s.prefix, i))
		if !s.usable(secret) {
			continue
		}
		creds = append(creds, Credential{
			ID:     fmt.Sprintf("env-%d", i),
			Secret: strings.TrimSpace(secret),
			Status: StatusActive,
		})
	}
	return creds
}

func (s *EnvSource) loadCombined() []Credential {
	combined := strings.TrimSpace(os.Getenv(s.prefix + "S"))
	if combined == "" || strings.EqualFold(combined, "key1|key2|key3") {
		return nil
	}
	var creds []Credential
	for _, part := range strings.Split(combined, "|") {
		if !s.usable(part) {
			continue
		}
		creds = append(creds, Credential{
			ID:     fmt.Sprintf("env-%d", len(creds)+1),
			Secret: strings.TrimSpace(part),
			Status: StatusActive,
		})
	}
	return creds
}

func (s *EnvSource) usable(secret string) bool {
	secret = strings.TrimSpace(secret)
	if !UsableSecret(secret) {
		return false
	}
	if s.requiredPrefix != "" && !strings.HasPrefix(secret, s.requiredPrefix) {
		return false
	}
	return true
}
