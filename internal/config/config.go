// Package config loads server configuration by layering an optional YAML
// file and environment variables over compiled-in defaults.
package config

import (
	"os"
	"time"

	"github.com/elastic/go-ucfg"
	ucfgyaml "github.com/elastic/go-ucfg/yaml"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"

	"github.com/lukluk/rendang/internal/adminserver"
	"github.com/lukluk/rendang/internal/logger"
)

// Config is the fully resolved set of knobs the server harness needs.
type Config struct {
	Address     string             `config:"address"`
	GracePeriod time.Duration      `config:"gracePeriod"`
	Logger      logger.Options     `config:"logger"`
	Admin       adminserver.Config `config:"admin"`
}

func defaults() Config {
	return Config{
		Address:     "0.0.0.0:6379",
		GracePeriod: 5 * time.Second,
		Logger:      logger.DefaultOptions(),
		Admin: adminserver.Config{
			Enabled: true,
			Address: "127.0.0.1:9121",
			Pprof:   false,
		},
	}
}

// Load resolves a Config: compiled defaults, overridden by path's YAML
// content (if path is non-empty), overridden by RENDANG_ADDR and
// RENDANG_LOG_LEVEL.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		parsed, err := ucfgyaml.NewConfigWithFile(path, ucfg.PathSep("."))
		if err != nil {
			return Config{}, errors.Wrap(err, "config: read yaml")
		}
		var override Config
		if err := parsed.Unpack(&override); err != nil {
			return Config{}, errors.Wrap(err, "config: unpack yaml")
		}
		if err := mergo.Merge(&override, cfg); err != nil {
			return Config{}, errors.Wrap(err, "config: merge defaults")
		}
		cfg = override
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RENDANG_ADDR"); v != "" {
		cfg.Address = v
	}
	if v := os.Getenv("RENDANG_LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
}
