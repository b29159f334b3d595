// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads per-user values that should stay out of the config
// file from a directory of plain-text files: the filename is the key and the
// trimmed contents are the value.
//
// Recognised keys: crossref-mailto.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// CrossrefMailto holds the contact email sent to Crossref's polite pool.
const CrossrefMailto = "crossref-mailto"

// DefaultDir is where the CLI looks for secrets.
const DefaultDir = ".secrets/"

// Secrets maps key names to values.
type Secrets map[string]string

// Get returns the value for key, or "".
func (s Secrets) Get(key string) string {
	return s[key]
}

// Keys returns the loaded key names, sorted, for diagnostics.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty set. Unreadable or blank files are skipped; unreadable ones
// are logged at warn.
func Load(dir string, log *zap.Logger) (Secrets, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			out[name] = value
		}
	}
	return out, nil
}
