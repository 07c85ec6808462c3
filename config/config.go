package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// New loads the optional YAML file at configFile and then the process
// environment on top of it. Keys are flat and lowercase: JWT_SECRET and a
// `jwt_secret:` entry in the file name the same setting.
func New(configFile string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if configFile != "" {
		content, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return k, nil
}

func GetString(config *koanf.Koanf, key string, defaultValue string) string {
	if config == nil || !config.Exists(key) {
		return defaultValue
	}
	return config.String(key)
}

func GetInt(config *koanf.Koanf, key string, defaultValue int) int {
	if config == nil || !config.Exists(key) {
		return defaultValue
	}

	asInt, err := strconv.Atoi(strings.TrimSpace(config.String(key)))
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config *koanf.Koanf, key string, defaultValue bool) bool {
	if config == nil || !config.Exists(key) {
		return defaultValue
	}
	switch strings.ToLower(strings.TrimSpace(config.String(key))) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return defaultValue
}

func GetDuration(config *koanf.Koanf, key string, defaultValue time.Duration) time.Duration {
	if config == nil || !config.Exists(key) {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(config.String(key)))
	if err != nil {
		return defaultValue
	}
	return d
}

// GetStrings reads a list either from a YAML sequence or from a
// comma-separated string. Empty entries are dropped.
func GetStrings(config *koanf.Koanf, key string) []string {
	if config == nil || !config.Exists(key) {
		return nil
	}

	var raw []string
	if s, ok := config.Get(key).(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = config.Strings(key)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
