// Package config resolves runtime settings from defaults, an optional
// TOML or YAML file, TODO_* environment variables and finally flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/query"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	DefaultDataFile   = "tasks.txt"
	DefaultSQLitePath = "tasks.db"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type RuntimeConfig struct {
	DataFile        string   `toml:"data_file" yaml:"data_file"`
	Backend         string   `toml:"backend" yaml:"backend"`
	SQLitePath      string   `toml:"sqlite_path" yaml:"sqlite_path"`
	Categories      []string `toml:"categories" yaml:"categories"`
	DefaultCategory string   `toml:"default_category" yaml:"default_category"`
	DefaultPriority string   `toml:"default_priority" yaml:"default_priority"`
	DefaultSort     string   `toml:"default_sort" yaml:"default_sort"`
	LogLevel        string   `toml:"log_level" yaml:"log_level"`
	LogFormat       string   `toml:"log_format" yaml:"log_format"`
	LogFile         string   `toml:"log_file" yaml:"log_file"`
	AltScreen       bool     `toml:"alt_screen" yaml:"alt_screen"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataFile:        DefaultDataFile,
		Backend:         BackendFile,
		SQLitePath:      DefaultSQLitePath,
		Categories:      []string{string(model.CategoryPersonal), string(model.CategoryWork)},
		DefaultCategory: string(model.CategoryPersonal),
		DefaultPriority: string(model.PriorityMedium),
		DefaultSort:     string(query.SortRecent),
		LogLevel:        "info",
		LogFormat:       "text",
		AltScreen:       true,
	}
}

// Load layers defaults, the config file at path (or the first one found
// when path is empty) and the environment.
func Load(path string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if path == "" {
		path = FindConfigFile()
	}
	if path != "" {
		if err := LoadFile(&cfg, expandPath(path)); err != nil {
			return RuntimeConfig{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}
	cfg = RuntimeConfigFromEnv(cfg)
	cfg.Finalize()
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// LoadFile decodes path onto cfg; keys absent from the file keep their value.
func LoadFile(cfg *RuntimeConfig, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(raw, cfg)
	default:
		_, err := toml.DecodeFile(path, cfg)
		return err
	}
}

// FindConfigFile returns the first existing project or user config file.
func FindConfigFile() string {
	candidates := []string{"todo.toml", ".todo.toml", "todo.yaml", ".todo.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(dir, "todo", "config.toml"),
			filepath.Join(dir, "todo", "config.yaml"),
		)
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TODO_FILE"); ok {
		cfg.DataFile = v
	}
	if v, ok := getEnvString("TODO_BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := getEnvString("TODO_SQLITE_PATH"); ok {
		cfg.SQLitePath = v
	}
	if v, ok := getEnvString("TODO_CATEGORIES"); ok {
		if parts := splitAndTrim(v, ","); len(parts) > 0 {
			cfg.Categories = parts
		}
	}
	if v, ok := getEnvString("TODO_DEFAULT_CATEGORY"); ok {
		cfg.DefaultCategory = v
	}
	if v, ok := getEnvString("TODO_DEFAULT_PRIORITY"); ok {
		cfg.DefaultPriority = v
	}
	if v, ok := getEnvString("TODO_DEFAULT_SORT"); ok {
		cfg.DefaultSort = v
	}
	if v, ok := getEnvString("TODO_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TODO_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := getEnvString("TODO_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("TODO_ALT_SCREEN"); ok {
		cfg.AltScreen = v
	}
	return cfg
}

// Finalize normalizes values and expands paths.
func (c *RuntimeConfig) Finalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.DataFile = expandPath(strings.TrimSpace(c.DataFile))
	c.SQLitePath = expandPath(strings.TrimSpace(c.SQLitePath))
	c.LogFile = expandPath(strings.TrimSpace(c.LogFile))
	c.Categories = splitAndTrim(strings.Join(c.Categories, ","), ",")
	if p, err := model.NormalizePriority(c.DefaultPriority); err == nil {
		c.DefaultPriority = string(p)
	}
	if cat, err := model.NormalizeCategory(c.DefaultCategory, c.Categories); err == nil {
		c.DefaultCategory = string(cat)
	}
}

func (c RuntimeConfig) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.DataFile == "" {
			return fmt.Errorf("%w: data_file is required for the file backend", ErrInvalidConfig)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path is required for the sqlite backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: at least one category is required", ErrInvalidConfig)
	}
	for _, cat := range c.Categories {
		if strings.Contains(cat, model.FieldDelimiter) || strings.EqualFold(cat, query.CategoryAll) {
			return fmt.Errorf("%w: category %q is not allowed", ErrInvalidConfig, cat)
		}
	}
	if _, err := model.NormalizeCategory(c.DefaultCategory, c.Categories); err != nil {
		return fmt.Errorf("%w: default_category %q is not a configured category", ErrInvalidConfig, c.DefaultCategory)
	}
	if _, err := model.NormalizePriority(c.DefaultPriority); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := query.ParseSortMode(c.DefaultSort); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// expandPath expands a leading ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded, "~"))
	}
	return expanded
}
