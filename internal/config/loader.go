package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ZMANIM_CONFIG is set
//  3. env (prefix ZMANIM_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ZMANIM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: ZMANIM_ZIPCODE, ZMANIM_CACHE_PATH, ...
	// Keys map to the koanf tags with underscores preserved.
	envProvider := env.Provider("ZMANIM_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "zmanim_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Zipcode == "" {
		return nil, errors.New("zipcode must not be empty")
	}
	if cfg.Timezone == "" {
		return nil, errors.New("timezone must not be empty")
	}
	return &cfg, nil
}
