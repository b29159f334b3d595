// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads radar settings from defaults, a YAML config file,
// GIVELIT_* environment variables, an optional .env file and bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/juanvillada/givelit/internal/httputil"
	"github.com/juanvillada/givelit/pkg/types"
)

// Viper keys shared with the CLI flag bindings.
const (
	KeyKeywords    = "keywords"
	KeyJournals    = "journals"
	KeyCatalog     = "catalog"
	KeyLimit       = "limit"
	KeyDays        = "days"
	KeySort        = "sort"
	KeyFormat      = "format"
	KeyOutput      = "output"
	KeyTimeout     = "timeout"
	KeyUserAgent   = "user_agent"
	KeyMailto      = "mailto"
	KeyCrossrefURL = "crossref_url"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
)

// EnvPrefix namespaces environment overrides, e.g. GIVELIT_DAYS.
const EnvPrefix = "GIVELIT"

// DefaultUserAgent identifies givelit to Crossref.
const DefaultUserAgent = "givelit/0.1 (+https://github.com/juanvillada/givelit)"

const (
	MinLimit = 1
	MaxLimit = 100
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyKeywords, []string{"metagenomics"})
	v.SetDefault(KeyLimit, 12)
	v.SetDefault(KeyDays, 30)
	v.SetDefault(KeySort, string(types.SortScore))
	v.SetDefault(KeyFormat, string(types.FormatCLI))
	v.SetDefault(KeyTimeout, httputil.DefaultTimeout)
	v.SetDefault(KeyUserAgent, DefaultUserAgent)
	v.SetDefault(KeyCrossrefURL, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
}

// LoadDotEnv reads KEY=value pairs from path into the process environment.
// A missing file is not an error; existing variables are not overridden.
func LoadDotEnv(path string) {
	_ = godotenv.Load(path)
}

// Load decodes v into a RadarConfig and validates it.
func Load(v *viper.Viper) (types.RadarConfig, error) {
	var cfg types.RadarConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.RadarConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Keywords = SplitList(cfg.Keywords)
	cfg.Journals = normaliseJournalLabels(cfg.Journals)
	if cfg.Timeout <= 0 {
		cfg.Timeout = httputil.DefaultTimeout
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	cfg.Mailto = strings.TrimSpace(cfg.Mailto)
	cfg.CrossrefURL = strings.TrimSpace(cfg.CrossrefURL)

	if err := Validate(&cfg); err != nil {
		return types.RadarConfig{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations and canonicalises sort and format.
// A zero timeout selects the client default.
func Validate(cfg *types.RadarConfig) error {
	if cfg.Limit < MinLimit || cfg.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between %d and %d, got %d", ErrInvalidConfig, MinLimit, MaxLimit, cfg.Limit)
	}
	if cfg.Days < 0 {
		return fmt.Errorf("%w: days must be >= 0, got %d", ErrInvalidConfig, cfg.Days)
	}
	sortBy, err := types.ParseSortStrategy(string(cfg.Sort))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Sort = sortBy
	format, err := types.ParseReportFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Format = format
	if cfg.Timeout != 0 && cfg.Timeout < time.Second {
		return fmt.Errorf("%w: timeout must be at least 1s, got %s", ErrInvalidConfig, cfg.Timeout)
	}
	return nil
}

// SplitList splits comma-separated entries, trims them and drops blanks.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func normaliseJournalLabels(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
