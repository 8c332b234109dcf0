package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/markglenn/orbbs/internal/server"
)

type fileConfig struct {
	Listen      string `toml:"listen"`
	IdleTimeout string `toml:"idle_timeout"`
	Charset     string `toml:"charset"`
}

// loadConfig overlays the TOML file at path on top of the default server
// config. Keys absent from the file keep their defaults.
func loadConfig(path string) (server.Config, error) {
	cfg := server.DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return server.Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("listen") {
		if addr := strings.TrimSpace(raw.Listen); addr != "" {
			cfg.Addr = addr
		}
	}

	if meta.IsDefined("idle_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.IdleTimeout))
		if err != nil {
			return server.Config{}, fmt.Errorf("parse idle_timeout: %w", err)
		}
		cfg.IdleTimeout = d
	}

	if meta.IsDefined("charset") {
		if name := strings.TrimSpace(raw.Charset); name != "" {
			cfg.CharsetName = name
		}
	}

	return cfg, nil
}
