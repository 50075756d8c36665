package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ProjectFileName is the optional per-project settings file read from
// the working directory.
const ProjectFileName = "portfolio.yaml"

// Config holds application configuration.
type Config struct {
	Port            string
	GinMode         string
	GitHubToken     string
	GitHubUser      string
	Output          string
	Format          string
	Exclude         []string
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// fileConfig is the optional portfolio.yaml document. It overrides the
// environment for the settings it names.
type fileConfig struct {
	User    string   `yaml:"user"`
	Output  string   `yaml:"output"`
	Format  string   `yaml:"format"`
	Exclude []string `yaml:"exclude"`
}

// Load reads configuration from the environment (a .env file is
// honored if present) and then from portfolio.yaml if one exists.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = "release"
	}

	cfg := &Config{
		Port:            port,
		GinMode:         ginMode,
		GitHubToken:     os.Getenv("GITHUB_TOKEN"),
		GitHubUser:      os.Getenv("GITHUB_USER"),
		Output:          "portfolio.json",
		Format:          "json",
		ShutdownTimeout: 10 * time.Second,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
	}

	applyProjectFile(cfg, ProjectFileName)
	return cfg
}

func applyProjectFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return
	}
	if fc.User != "" {
		cfg.GitHubUser = fc.User
	}
	if fc.Output != "" {
		cfg.Output = fc.Output
	}
	if fc.Format != "" {
		cfg.Format = fc.Format
	}
	if len(fc.Exclude) > 0 {
		cfg.Exclude = fc.Exclude
	}
}

// ExcludeSet returns the configured exclusions as a lookup set.
func (c *Config) ExcludeSet() map[string]bool {
	set := make(map[string]bool, len(c.Exclude))
	for _, name := range c.Exclude {
		set[name] = true
	}
	return set
}
