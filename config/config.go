package config

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/tour/errors"
	"github.com/grovetools/tour/pkg/paths"
	"github.com/grovetools/tour/schema"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are searched, in order, in each directory from the start
// directory up to the filesystem root.
var configNames = []string{
	"tour.yml",
	"tour.yaml",
	".tour.yml",
	"tour.toml",
}

// Format is a config file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatForPath picks the syntax from the file extension.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads and parses one configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := LoadFromBytes(data, FormatForPath(path))
	if err != nil {
		if tourErr, ok := errors.As(err); ok {
			return nil, tourErr.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads configuration starting from the working directory.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads configuration with layering:
// 1. Global config ($XDG_CONFIG_HOME/grove/tour.yml) - base layer
// 2. Project config (tour.yml and friends, searched upward) - overrides global
//
// Neither file is required; with no files the defaults are returned.
func LoadFrom(startDir string) (*Config, error) {
	return LoadFromWithLogger(startDir, logrus.New())
}

// LoadFromWithLogger is LoadFrom with a caller-supplied logger.
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	var final *Config

	if globalPath := getXDGConfigPath(); globalPath != "" {
		if info, err := os.Stat(globalPath); err == nil && !info.IsDir() {
			logger.WithField("path", globalPath).Debug("Loading global configuration")
			raw, err := readRaw(globalPath)
			if err != nil {
				logger.WithError(err).Warn("Failed to read global configuration, continuing without it")
			} else {
				final = raw
			}
		}
	}

	if projectPath, ok := findProjectConfig(startDir); ok {
		logger.WithField("path", projectPath).Debug("Loading project configuration")
		raw, err := readRaw(projectPath)
		if err != nil {
			return nil, err
		}
		if final == nil {
			final = raw
		} else {
			logger.Debug("Merging project configuration over global configuration")
			final = mergeConfigs(final, raw)
		}
	}

	if final == nil {
		final = &Config{}
	}
	final.SetDefaults()
	if err := final.Validate(); err != nil {
		return nil, err
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(final); err == nil {
			logger.Debugf("Merged configuration:\n%s", string(data))
		}
	}
	return final, nil
}

// LoadFromBytes parses, validates and defaults configuration data.
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	cfg, err := parse(data, format)
	if err != nil {
		return nil, err
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readRaw parses a file without applying defaults, for layering.
func readRaw(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}
	cfg, err := parse(data, FormatForPath(path))
	if err != nil {
		if tourErr, ok := errors.As(err); ok {
			return nil, tourErr.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

var (
	compileOnce sync.Once
	compiled    *schema.Validator
	compileErr  error
)

// schemaValidator compiles the embedded schema once per process.
func schemaValidator() (*schema.Validator, error) {
	compileOnce.Do(func() {
		compiled, compileErr = schema.NewValidator()
	})
	return compiled, compileErr
}

// parse expands environment variables, checks the document against the
// embedded schema and decodes it. YAML and TOML share one decode path
// through a generic map.
func parse(data []byte, format Format) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	raw := make(map[string]interface{})
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
	default:
		if err := yaml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
	}

	validator, err := schemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create validator")
	}
	if err := validator.Validate(raw); err != nil {
		tourErr := errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
		var verr *schema.ValidationError
		if stderrors.As(err, &verr) {
			paths := make([]string, 0, len(verr.Violations))
			for _, v := range verr.Violations {
				paths = append(paths, v.Path)
			}
			tourErr = tourErr.WithDetail("violations", paths)
		}
		return nil, tourErr
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &cfg,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create config decoder")
	}
	if err := decoder.Decode(normalize(raw)); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = nil
	}
	return &cfg, nil
}

// normalize round-trips through JSON so numbers and nested maps have the
// same Go types whichever syntax the file used.
func normalize(raw map[string]interface{}) map[string]interface{} {
	data, err := json.Marshal(raw)
	if err != nil {
		return raw
	}
	out := make(map[string]interface{})
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return raw
	}
	return convertNumbers(out).(map[string]interface{})
}

func convertNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = convertNumbers(val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = convertNumbers(val)
		}
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		f, _ := t.Float64()
		return f
	default:
		return v
	}
}

// FindConfigFile searches for a tour configuration file from startDir up to
// the filesystem root, then falls back to the XDG config directory.
func FindConfigFile(startDir string) (string, error) {
	if path, ok := findProjectConfig(startDir); ok {
		return path, nil
	}

	if xdgConfigPath := getXDGConfigPath(); xdgConfigPath != "" {
		if info, err := os.Stat(xdgConfigPath); err == nil && !info.IsDir() {
			return xdgConfigPath, nil
		}
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

func findProjectConfig(startDir string) (string, bool) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// getXDGConfigPath returns the global tour config path.
func getXDGConfigPath() string {
	return paths.GlobalConfigFile()
}
