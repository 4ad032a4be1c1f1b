// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package bootstrap

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/typenames/internal/contract"
	"github.com/kraklabs/typenames/pkg/scan"
)

// ConfigFileName is the project configuration file looked up in the scan root.
const ConfigFileName = ".typenames.yaml"

// ErrConfigExists is returned by InitConfig when the file already exists
// and force is not set.
var ErrConfigExists = errors.New("config file already exists")

// ConfigPath returns the default configuration path for dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

// InitConfig writes a configuration file with the default settings into dir
// and returns its path. An existing file is only replaced when force is set.
func InitConfig(dir string, force bool, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path := ConfigPath(dir)
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	cfg := scan.DefaultConfig(dir)
	// Worker count is machine specific; leave it to the runtime default.
	cfg.Workers = 0

	var buf bytes.Buffer
	buf.WriteString("# typenames configuration\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	logger.Info("bootstrap.config.init", "path", path, "force", force)
	return path, nil
}

// LoadConfig reads the configuration at path and applies it on top of
// scan.DefaultConfig(root). An empty path means ConfigPath(root); a missing
// file at the default location yields the defaults, while a missing file
// that was named explicitly is an error.
//
// Keys absent from the file keep their default values. The
// TYPENAMES_MAX_FILE_SIZE_BYTES environment variable overrides the size
// limit from either source.
func LoadConfig(path, root string, logger *slog.Logger) (scan.Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg := scan.DefaultConfig(root)
	explicit := path != ""
	if !explicit {
		path = ConfigPath(configDir(root))
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		// Root is never read from the file.
		cfg.Root = root
		logger.Debug("bootstrap.config.loaded", "path", path)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		logger.Debug("bootstrap.config.default", "path", path)
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if n, ok := contract.MaxFileSizeOverride(); ok {
		cfg.MaxFileSizeBytes = n
	}
	if res := contract.ValidateConfig(cfg); !res.OK {
		return cfg, fmt.Errorf("invalid config %s: %s", path, res.Message)
	}
	return cfg, nil
}

// configDir returns the directory holding the configuration for root, which
// may name a single file.
func configDir(root string) string {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return filepath.Dir(root)
	}
	return root
}
