package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/tsawler/rtf/core"
)

// Config holds rtfdump settings.
type Config struct {
	CodePage    int    `toml:"codepage"`
	UnicodeSkip int    `toml:"unicode_skip"`
	BufferSize  int    `toml:"buffer_size"`
	Verbosity   int    `toml:"verbosity"`
	LogFile     string `toml:"log_file"`
	BinDir      string `toml:"bin_dir"`
}

func defaultConfig() Config {
	return Config{
		CodePage:    core.DefaultCodePage,
		UnicodeSkip: core.DefaultUnicodeSkip,
		BufferSize:  core.DefaultBufferSize,
	}
}

// loadConfig reads a TOML config file over the defaults. A missing file is
// only an error when required is set.
func loadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, ok := core.CodePageEncoding(cfg.CodePage); !ok {
		return cfg, fmt.Errorf("config %s: %w: %d", path, core.ErrUnsupportedCodePage, cfg.CodePage)
	}
	return cfg, nil
}
