package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"bignum/internal/bignum"
)

const configFileName = "bignum.toml"

type config struct {
	Prime  primeConfig  `toml:"prime"`
	Output outputConfig `toml:"output"`
	Cache  cacheConfig  `toml:"cache"`
	Trace  traceConfig  `toml:"trace"`
	Calc   calcConfig   `toml:"calc"`

	// path is the file the config came from, empty for defaults.
	path string
}

type primeConfig struct {
	Rounds      int `toml:"rounds"`
	MaxAttempts int `toml:"max_attempts"`
	Jobs        int `toml:"jobs"`
}

type outputConfig struct {
	Format string `toml:"format"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type traceConfig struct {
	Level string `toml:"level"`
}

type calcConfig struct {
	Modulus *bignum.BigInt `toml:"modulus"`
}

func defaultConfig() config {
	return config{
		Output: outputConfig{Format: "dec"},
		Trace:  traceConfig{Level: "off"},
	}
}

// findConfig walks up from startDir looking for bignum.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// loadConfig reads explicitPath when set, otherwise the nearest
// bignum.toml above startDir. No file at all yields the defaults.
func loadConfig(explicitPath, startDir string) (config, error) {
	path := explicitPath
	if path == "" {
		found, ok, err := findConfig(startDir)
		if err != nil {
			return config{}, err
		}
		if !ok {
			return defaultConfig(), nil
		}
		path = found
	}
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

func (c config) validate() error {
	if c.Prime.Rounds < 0 || c.Prime.MaxAttempts < 0 || c.Prime.Jobs < 0 {
		return errors.New("[prime] values must not be negative")
	}
	if _, err := parseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("[output] %w", err)
	}
	if c.Calc.Modulus != nil && c.Calc.Modulus.Sign() <= 0 {
		return errors.New("[calc] modulus must be positive")
	}
	return nil
}
