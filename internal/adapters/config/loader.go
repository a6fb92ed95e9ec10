// Package config provides the configuration loader for yaac.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration schema version understood by this loader.
const SupportedVersion = "1"

// envFileNames are loaded in order. Earlier files and the process environment win.
var envFileNames = []string{domain.EnvFileName, domain.EnvFileName + ".local"}

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
	// LookupEnv and Setenv default to the process environment.
	LookupEnv func(key string) (string, bool)
	Setenv    func(key, value string) error
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:    logger,
		FS:        NewOSFS(),
		LookupEnv: os.LookupEnv,
		Setenv:    os.Setenv,
	}
}

// Load discovers yaac.yaml by walking up from cwd. Without a configuration
// file the defaults rooted at cwd are used. Env files next to the
// configuration are loaded first so they can select the deployment mode.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, found := l.findConfiguration(cwd)

	root := filepath.Clean(cwd)
	if found {
		root = filepath.Dir(configPath)
	}

	if err := l.loadEnvFiles(root); err != nil {
		return nil, err
	}

	if !found {
		return domain.DefaultConfig(root), nil
	}

	var file Yaacfile
	if err := readAndUnmarshalYAML(l.FS, configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", domain.ConfigFileName, file.Version, SupportedVersion))
	}

	return buildConfig(root, &file)
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) loadEnvFiles(dir string) error {
	for _, name := range envFileNames {
		path := filepath.Join(dir, name)
		data, err := l.FS.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return zerr.With(zerr.Wrap(err, domain.ErrEnvFileLoadFailed.Error()), "path", path)
		}

		values, err := godotenv.Parse(bytes.NewReader(data))
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrEnvFileLoadFailed.Error()), "path", path)
		}

		for key, value := range values {
			if _, exists := l.LookupEnv(key); exists {
				continue
			}
			if err := l.Setenv(key, value); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrEnvFileLoadFailed.Error()), "key", key)
			}
		}
	}
	return nil
}

func buildConfig(root string, file *Yaacfile) (*domain.Config, error) {
	cfg := domain.DefaultConfig(root)

	if len(file.SearchPath) > 0 {
		cfg.SearchPath = make([]string, 0, len(file.SearchPath))
		for _, dir := range file.SearchPath {
			if dir == "" {
				return nil, zerr.With(domain.ErrEmptySearchPath, "root", root)
			}
			cfg.SearchPath = append(cfg.SearchPath, resolvePath(root, dir))
		}
	}

	if file.Dest != "" {
		cfg.Dest = resolvePath(root, file.Dest)
	}

	if file.URLPrefix != nil {
		if *file.URLPrefix == "" {
			return nil, domain.ErrInvalidURLPrefix
		}
		cfg.URLPrefix = *file.URLPrefix
	}

	if file.ModeEnv != "" {
		cfg.ModeEnv = file.ModeEnv
	}

	if file.Digest != "" {
		cfg.Digest = file.Digest
	}

	if len(file.Compilers) > 0 {
		cfg.Compilers = domain.MergeCompilers(file.Compilers)
	}

	cfg.Ignore = file.Ignore

	return cfg, nil
}

// resolvePath resolves configured paths against the configuration directory.
func resolvePath(root, configured string) string {
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(root, configured))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](fsys FileSystem, configPath string, target *T) error {
	configFile, err := fsys.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
