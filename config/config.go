// Package config aggregates the configuration of every package of the
// matcher. Values come from the defaults, then an optional TOML file, then the
// command line flags.
package config

import (
	"bytes"
	"os"

	"github.com/ontanj/cmatch"
	"github.com/ontanj/cmatch/he"
	"github.com/ontanj/cmatch/logging"
	"github.com/ontanj/cmatch/metrics"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

var ErrConfigExists = errors.New("configuration file already exists")

// Config ties together all other application configuration types.
type Config struct {
	Matching cmatch.Config  `group:"Matching" namespace:"matching"`
	Crypto   he.Config      `group:"Crypto" namespace:"crypto"`
	Logging  logging.Config `group:"Logging" namespace:"logging"`
	Metrics  metrics.Config `group:"Metrics" namespace:"metrics"`
}

// NewDefaultConfig returns a set of default configs for all packages.
func NewDefaultConfig() Config {
	return Config{
		Matching: cmatch.NewDefaultConfig(),
		Crypto:   he.NewDefaultConfig(),
		Logging:  logging.NewDefaultConfig(),
		Metrics:  metrics.NewDefaultConfig(),
	}
}

// Read overlays the TOML file at path on top of the defaults. Keys missing
// from the file keep their default value.
func Read(path string) (Config, error) {
	cfg := NewDefaultConfig()
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "could not read configuration")
	}
	md, err := toml.Decode(string(buf), &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "invalid configuration %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("unknown configuration key %s in %s", undecoded[0], path)
	}
	if err := cfg.Matching.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid configuration %s", path)
	}
	return cfg, nil
}

// Write stores cfg as TOML at path. An existing file is only replaced when
// overwrite is set.
func Write(path string, cfg Config, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.Wrap(ErrConfigExists, path)
	}
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return errors.Wrap(err, "could not encode configuration")
	}
	return errors.Wrap(os.WriteFile(path, buf.Bytes(), 0o600), "could not write configuration")
}
