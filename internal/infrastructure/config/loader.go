package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when none is given
const DefaultFile = "configs.json"

// ErrUnsupportedFormat is returned for config files that are neither JSON nor YAML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader loads game configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// Load reads name on top of Default, applies environment overrides and validates.
// A missing file is not an error; the defaults are used instead.
func (l *Loader) Load(name string) (*GameConfig, error) {
	cfg := Default()

	data, err := fs.ReadFile(l.fsys, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	default:
		if err := decode(name, data, cfg); err != nil {
			return nil, err
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", name, err)
	}
	return cfg, nil
}

// Path returns the on-disk path of name under the loader's base path
func (l *Loader) Path(name string) string {
	return filepath.Join(l.basePath, name)
}

func decode(name string, data []byte, cfg *GameConfig) error {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		return fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	return nil
}

// Marshal encodes cfg in the format implied by the file name
func Marshal(name string, cfg *GameConfig) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return json.MarshalIndent(cfg, "", "    ")
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
}

// WriteDefault writes Default to path, creating parent directories
func WriteDefault(path string) error {
	data, err := Marshal(path, Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
