package config

import (
	"os"

	"scenario-runner/internal/calculator"
	"scenario-runner/internal/model"
)

// Config is resolved once at startup and read-only afterwards.
type Config struct {
	Addr                string             `yaml:"addr"`
	APIBaseURL          string             `yaml:"api_base_url"`
	DefaultJurisdiction model.Jurisdiction `yaml:"default_jurisdiction"`
	SnippetLanguage     string             `yaml:"snippet_language"`
	LogLevel            string             `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Addr:                ":8080",
		APIBaseURL:          calculator.DefaultBaseURL,
		DefaultJurisdiction: model.JurisdictionUK,
		SnippetLanguage:     "python",
		LogLevel:            "info",
	}
}

// Load layers an optional YAML file and the environment over Default.
// path may be empty, in which case the usual locations are searched.
func Load(path string) (Config, error) {
	cfg := Default()

	if found := FindConfigFile(path); found != "" {
		if err := cfg.mergeFile(found); err != nil {
			return Config{}, err
		}
	} else if path != "" {
		return Config{}, ErrConfigNotFound
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if v := os.Getenv("CALCULATOR_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("DEFAULT_MODE"); v != "" {
		c.DefaultJurisdiction = model.Jurisdiction(v)
	}
	if v := os.Getenv("SNIPPET_LANGUAGE"); v != "" {
		c.SnippetLanguage = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) Validate() error {
	j, err := model.ParseJurisdiction(string(c.DefaultJurisdiction), model.JurisdictionUK)
	if err != nil {
		return err
	}
	c.DefaultJurisdiction = j
	return nil
}
