package credential

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// FileSource loads API keys from a JSON document on disk. Two entry shapes
// are accepted inside the top-level "keys" array:
//
//	{"keys": ["secret-a", "secret-b"]}
//	{"keys": [{"id": "prod-1", "secret": "...", "disabled": true}]}
//
// Disabled entries are loaded (so they show up in reports) but excluded from
// rotation by the store.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed credential source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the source identifier.
func (s *FileSource) Name() string {
	return "file"
}

// Load reads and parses the key file.
func (s *FileSource) Load(_ context.Context) ([]Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("key file %s is not valid JSON", s.path)
	}

	keys := gjson.GetBytes(data, "keys")
	if !keys.Exists() || !keys.IsArray() {
		return nil, fmt.Errorf("key file %s is missing a top-level \"keys\" array", s.path)
	}

	var creds []Credential
	for i, entry := range keys.Array() {
		cred, ok := s.parseEntry(i, entry)
		if !ok {
			continue
		}
		creds = append(creds, cred)
	}

	log.Infof("Loaded %d API key(s) from %s", len(creds), s.path)
	return creds, nil
}

func (s *FileSource) parseEntry(idx int, entry gjson.Result) (Credential, bool) {
	cred := Credential{
		ID:     fmt.Sprintf("file-%d", idx+1),
		Status: StatusActive,
	}

	switch {
	case entry.Type == gjson.String:
		cred.Secret = strings.TrimSpace(entry.String())
	case entry.IsObject():
		cred.Secret = strings.TrimSpace(entry.Get("secret").String())
		if id := strings.TrimSpace(entry.Get("id").String()); id != "" {
			cred.ID = id
		}
		if entry.Get("disabled").Bool() {
			cred.Status = StatusDisabled
		}
	default:
		log.Warnf("Skipping key entry %d in %s: unsupported shape", idx+1, s.path)
		return Credential{}, false
	}

	if !UsableSecret(cred.Secret) {
		log.Warnf("Skipping key entry %d in %s: empty or placeholder secret", idx+1, s.path)
		return Credential{}, false
	}
	return cred, true
}
