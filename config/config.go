package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Document formats supported by the renderer.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Defaults applied when neither the config file nor the environment sets a value.
const (
	defaultReportPath   = "./reports/report.json"
	defaultDocumentPath = "./reports/packages.md"
	defaultRegistryURL  = "https://registry.npmjs.org"
)

// Config is the immutable process-wide configuration for one run. It is
// constructed once at startup and passed by reference into every component
// that needs it.
type Config struct {
	RepoPaths       []string `yaml:"repo_paths"`       // Explicit repository roots; wins over BaseDir
	BaseDir         string   `yaml:"base_dir"`         // Directory searched recursively for manifests
	ReportPath      string   `yaml:"report_path"`      // JSON report output path
	DocumentPath    string   `yaml:"document_path"`    // Rendered document output path
	DocumentFormat  string   `yaml:"document_format"`  // "markdown" or "html"
	SeparateReports bool     `yaml:"separate_reports"` // One rendered document per repository as well
	GoLatestVersion string   `yaml:"go_latest_version"` // Pins the latest Go toolchain version; release feed queried when empty
	RegistryURL     string   `yaml:"registry_url"`     // npm registry base URL
}

// New builds the run configuration: defaults, then an optional YAML config
// file, then environment variables (optionally loaded from a .env file),
// with later sources overriding earlier ones.
func New() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env file")
	}

	cfg := &Config{
		ReportPath:      defaultReportPath,
		DocumentPath:    defaultDocumentPath,
		DocumentFormat:  FormatMarkdown,
		SeparateReports: true,
		RegistryURL:     defaultRegistryURL,
	}

	if path, err := FindConfigFile(); err == nil {
		logger.Infof("Using config file: %s", path)
		if loadErr := loadFile(path, cfg); loadErr != nil {
			return nil, loadErr
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".depwatch.yaml",
		".depwatch.yml",
		"depwatch.yaml",
		"depwatch.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// loadFile merges a YAML config file into cfg.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return fmt.Errorf("failed to parse config file %q: %w", path, unmarshalErr)
	}
	return nil
}

// applyEnv overrides cfg with the recognized environment variables.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("REPO_PATHS"); ok {
		cfg.RepoPaths = splitPaths(v)
	}
	if v, ok := os.LookupEnv("BASE_DIR"); ok {
		cfg.BaseDir = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("REPORT_PATH"); ok {
		cfg.ReportPath = v
	}
	if v, ok := os.LookupEnv("DOCUMENT_PATH"); ok {
		cfg.DocumentPath = v
	}
	if v, ok := os.LookupEnv("DOCUMENT_FORMAT"); ok {
		cfg.DocumentFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv("GENERATE_SEPARATE_REPORTS"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warnf("Invalid GENERATE_SEPARATE_REPORTS value %q, keeping %v", v, cfg.SeparateReports)
		} else {
			cfg.SeparateReports = parsed
		}
	}
	if v, ok := os.LookupEnv("GOLANG_LATEST_VERSION"); ok {
		cfg.GoLatestVersion = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("NPM_REGISTRY_URL"); ok {
		cfg.RegistryURL = strings.TrimRight(strings.TrimSpace(v), "/")
	}
}

// splitPaths parses a comma-separated path list, dropping empty entries.
func splitPaths(raw string) []string {
	parts := strings.Split(raw, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}

// validate checks for values the run cannot proceed with.
func validate(cfg *Config) error {
	if cfg.DocumentFormat != FormatMarkdown && cfg.DocumentFormat != FormatHTML {
		return fmt.Errorf(
			"invalid DOCUMENT_FORMAT %q (must be %q or %q)",
			cfg.DocumentFormat, FormatMarkdown, FormatHTML,
		)
	}
	return nil
}
