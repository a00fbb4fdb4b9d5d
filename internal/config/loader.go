package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/grdn/statfuse/internal/domain/model"
	"github.com/grdn/statfuse/internal/domain/schema"
)

// Load builds a Config by layering defaults, optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if STATFUSE_CONFIG is set
//  3. env (prefix STATFUSE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("STATFUSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: STATFUSE_START_YEAR, STATFUSE_TABLE_TYPE,
	// ... flat keys matching the koanf tags; double underscore nests
	// (STATFUSE_THRESHOLD__STAT -> threshold.stat).
	envProvider := env.Provider("STATFUSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "statfuse_")
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects structurally broken configurations. These abort the
// run before any scraping begins.
func (c *Config) Validate() error {
	if c.StartYear <= 0 || c.EndYear <= 0 {
		return fmt.Errorf("%w: season range %d..%d", ErrInvalidConfig, c.StartYear, c.EndYear)
	}
	if c.TableType != TableComprehensive && !schema.Known(model.TableType(c.TableType)) {
		return fmt.Errorf("%w: unknown table type %q", ErrInvalidConfig, c.TableType)
	}
	if c.Threshold.Window < 0 {
		return fmt.Errorf("%w: negative threshold window", ErrInvalidConfig)
	}
	if c.Threshold.Window > len(c.Seasons()) {
		return fmt.Errorf("%w: threshold window %d exceeds %d requested seasons",
			ErrInvalidConfig, c.Threshold.Window, len(c.Seasons()))
	}
	return nil
}
