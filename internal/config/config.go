package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in config and flags.
const (
	BackendOpenAI = "openai"
	BackendOllama = "ollama"
)

type Config struct {
	Backend  string `yaml:"backend"`
	Glossary string `yaml:"glossary"`

	OpenAI struct {
		Model string `yaml:"model"`
	} `yaml:"openai"`

	Ollama struct {
		URL   string `yaml:"url"`
		Model string `yaml:"model"`
	} `yaml:"ollama"`

	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

func Default() *Config {
	cfg := &Config{
		Backend:  BackendOpenAI,
		Glossary: "data_set.csv",
	}
	cfg.Ollama.URL = "http://localhost:11434"
	cfg.Server.Port = 8080
	return cfg
}

// Load reads the yaml config at path and applies environment overrides. A
// missing file is not an error; defaults are used so the CLI works without
// any config.yaml.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GEOGATE_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("GEOGATE_GLOSSARY"); v != "" {
		c.Glossary = v
	}
	if v := os.Getenv("GEOGATE_OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv("GEOGATE_OLLAMA_URL"); v != "" {
		c.Ollama.URL = v
	}
	if v := os.Getenv("GEOGATE_OLLAMA_MODEL"); v != "" {
		c.Ollama.Model = v
	}
}

// OpenAIKey reads the hosted-backend credential from the environment; the
// key never lives in the config file.
func (c *Config) OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}
