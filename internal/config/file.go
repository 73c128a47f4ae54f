package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cosmic-astrology/siteapi/internal/constants"
)

const configFileName = "config.yml"

// SettableKeys are the keys stored by `siteapi config set`.
var SettableKeys = []string{
	"api",
	"output",
	"log_level",
	"timeout",
	"user_agent",
	"nats_url",
	"nats_subject",
	"import_threads",
}

// DefaultPath returns ~/.siteapi/config.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, configFileName), nil
}

// ReadFile returns the settings stored at path. A missing file holds no settings.
func ReadFile(path string) (map[string]interface{}, error) {
	// #nosec G304 -- path is the user's own config file
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]interface{}{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	settings := map[string]interface{}{}

	err = yaml.Unmarshal(data, &settings)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if settings == nil {
		settings = map[string]interface{}{}
	}

	return settings, nil
}

// WriteFile stores settings at path, creating its directory.
func WriteFile(path string, settings map[string]interface{}) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Set stores key=value at path. The resulting configuration must load.
func Set(path, key, value string) error {
	if !slices.Contains(SettableKeys, key) {
		return fmt.Errorf("%w: %q (valid keys: %v)", constants.ErrUnknownConfigKey, key, SettableKeys)
	}

	settings, err := ReadFile(path)
	if err != nil {
		return err
	}

	settings[key] = value

	v := viper.New()
	SetDefaults(v)

	err = v.MergeConfigMap(settings)
	if err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	_, err = Load(v)
	if err != nil {
		return err
	}

	return WriteFile(path, settings)
}

// Unset removes key from the file at path.
func Unset(path, key string) error {
	if !slices.Contains(SettableKeys, key) {
		return fmt.Errorf("%w: %q", constants.ErrUnknownConfigKey, key)
	}

	settings, err := ReadFile(path)
	if err != nil {
		return err
	}

	delete(settings, key)

	return WriteFile(path, settings)
}

// Settings returns the effective value of every settable key, sorted by key.
func (c *Config) Settings() [][2]string {
	values := map[string]string{
		"api":            c.API,
		"output":         c.Output,
		"log_level":      c.LogLevel,
		"timeout":        c.Timeout.String(),
		"user_agent":     c.UserAgent,
		"nats_url":       c.NATSURL,
		"nats_subject":   c.NATSSubject,
		"import_threads": fmt.Sprint(c.ImportThreads),
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	rows := make([][2]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, [2]string{key, values[key]})
	}

	return rows
}
