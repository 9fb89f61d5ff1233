package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"flux/internal/format"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Format  formatConfig  `toml:"format"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type formatConfig struct {
	IndentWidth int  `toml:"indent_width"`
	UseTabs     bool `toml:"use_tabs"`
	MaxWidth    int  `toml:"max_width"`
}

// findFluxToml walks from startDir to the filesystem root looking for a
// flux.toml manifest.
func findFluxToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "flux.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findFluxToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", manifestPath, err)
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// formatOptionsFromManifest resolves formatting options from the nearest
// manifest. Missing manifests and malformed ones fall back to the defaults;
// a formatter must never refuse to run over style configuration.
func formatOptionsFromManifest(startDir string) format.Options {
	manifest, ok, err := loadProjectManifest(startDir)
	if err != nil || !ok {
		return format.Options{}
	}
	cfg := manifest.Config.Format
	return format.Options{
		IndentWidth: cfg.IndentWidth,
		UseTabs:     cfg.UseTabs,
		MaxWidth:    cfg.MaxWidth,
	}
}
