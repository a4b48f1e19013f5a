package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depwatch/config"
)

// clearRecognizedEnv unsets every variable the config reads so tests are
// isolated from the surrounding environment. t.Setenv restores them.
func clearRecognizedEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REPO_PATHS", "BASE_DIR", "REPORT_PATH", "DOCUMENT_PATH",
		"DOCUMENT_FORMAT", "GENERATE_SEPARATE_REPORTS",
		"GOLANG_LATEST_VERSION", "NPM_REGISTRY_URL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestNew(t *testing.T) {
	t.Run("should apply defaults when nothing is configured", func(t *testing.T) {
		// given
		clearRecognizedEnv(t)

		// when
		cfg, err := config.New()

		// then
		require.NoError(t, err)
		assert.Empty(t, cfg.RepoPaths)
		assert.Empty(t, cfg.BaseDir)
		assert.Equal(t, "./reports/report.json", cfg.ReportPath)
		assert.Equal(t, "./reports/packages.md", cfg.DocumentPath)
		assert.Equal(t, config.FormatMarkdown, cfg.DocumentFormat)
		assert.True(t, cfg.SeparateReports)
		assert.Equal(t, "https://registry.npmjs.org", cfg.RegistryURL)
	})

	t.Run("should parse a comma-separated repo path list", func(t *testing.T) {
		// given
		clearRecognizedEnv(t)
		t.Setenv("REPO_PATHS", "/srv/app, /srv/api ,,/srv/web")

		// when
		cfg, err := config.New()

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"/srv/app", "/srv/api", "/srv/web"}, cfg.RepoPaths)
	})

	t.Run("should read the remaining environment options", func(t *testing.T) {
		// given
		clearRecognizedEnv(t)
		t.Setenv("BASE_DIR", "/srv/repos")
		t.Setenv("REPORT_PATH", "/tmp/out/report.json")
		t.Setenv("DOCUMENT_PATH", "/tmp/out/packages.html")
		t.Setenv("DOCUMENT_FORMAT", "HTML")
		t.Setenv("GENERATE_SEPARATE_REPORTS", "false")
		t.Setenv("GOLANG_LATEST_VERSION", "1.26.1")
		t.Setenv("NPM_REGISTRY_URL", "https://registry.example.com/")

		// when
		cfg, err := config.New()

		// then
		require.NoError(t, err)
		assert.Equal(t, "/srv/repos", cfg.BaseDir)
		assert.Equal(t, "/tmp/out/report.json", cfg.ReportPath)
		assert.Equal(t, "/tmp/out/packages.html", cfg.DocumentPath)
		assert.Equal(t, config.FormatHTML, cfg.DocumentFormat)
		assert.False(t, cfg.SeparateReports)
		assert.Equal(t, "1.26.1", cfg.GoLatestVersion)
		assert.Equal(t, "https://registry.example.com", cfg.RegistryURL)
	})

	t.Run("should reject an unsupported document format", func(t *testing.T) {
		// given
		clearRecognizedEnv(t)
		t.Setenv("DOCUMENT_FORMAT", "pdf")

		// when
		cfg, err := config.New()

		// then
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "DOCUMENT_FORMAT")
	})

	t.Run("should keep the default when the separate-reports flag is malformed", func(t *testing.T) {
		// given
		clearRecognizedEnv(t)
		t.Setenv("GENERATE_SEPARATE_REPORTS", "yep")

		// when
		cfg, err := config.New()

		// then
		require.NoError(t, err)
		assert.True(t, cfg.SeparateReports)
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("should find a config file in the working directory", func(t *testing.T) {
		// given
		dir := t.TempDir()
		path := filepath.Join(dir, ".depwatch.yaml")
		require.NoError(t, os.WriteFile(path, []byte("base_dir: /srv/repos\n"), 0o644))

		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		// when
		found, err := config.FindConfigFile()

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(".", ".depwatch.yaml"), found)
	})
}

func TestConfigFileMerging(t *testing.T) {
	t.Run("should let environment variables override the config file", func(t *testing.T) {
		// given
		clearRecognizedEnv(t)
		dir := t.TempDir()
		content := "base_dir: /srv/from-file\ndocument_format: html\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".depwatch.yaml"), []byte(content), 0o644))

		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		t.Setenv("BASE_DIR", "/srv/from-env")

		// when
		cfg, err := config.New()

		// then
		require.NoError(t, err)
		assert.Equal(t, "/srv/from-env", cfg.BaseDir)
		assert.Equal(t, config.FormatHTML, cfg.DocumentFormat)
	})
}
