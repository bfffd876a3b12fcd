package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"GITHUB_TOKEN",
		"DAILY_SOURCE_OWNER", "DAILY_SOURCE_REPO",
		"DAILY_DEST_OWNER", "DAILY_DEST_REPO",
		"DAILY_TIMEZONE",
	} {
		t.Setenv(env, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("file values are picked up", func(t *testing.T) {
		clearEnv(t)
		path := writeConfigFile(t, `
token: file-token
source_owner: acme
source_repo: website
dest_owner: acme
dest_repo: reports
timezone: UTC
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "file-token", cfg.Token)
		assert.Equal(t, "acme", cfg.SourceOwner)
		assert.Equal(t, "website", cfg.SourceRepo)
		assert.Equal(t, "reports", cfg.DestRepo)
		assert.Equal(t, "UTC", cfg.Timezone)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		clearEnv(t)
		path := writeConfigFile(t, `
token: file-token
source_owner: acme
source_repo: website
`)
		t.Setenv("GITHUB_TOKEN", "env-token")
		t.Setenv("DAILY_SOURCE_REPO", "blog")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "env-token", cfg.Token)
		assert.Equal(t, "acme", cfg.SourceOwner)
		assert.Equal(t, "blog", cfg.SourceRepo)
	})

	t.Run("no file is fine, environment alone is enough", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		t.Setenv("DAILY_SOURCE_OWNER", "acme")
		t.Setenv("DAILY_SOURCE_REPO", "website")

		cfg, err := Load("")

		require.NoError(t, err)
		require.NoError(t, cfg.Validate())
	})

	t.Run("destination defaults to the source pair", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		t.Setenv("DAILY_SOURCE_OWNER", "acme")
		t.Setenv("DAILY_SOURCE_REPO", "website")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "acme", cfg.DestOwner)
		assert.Equal(t, "website", cfg.DestRepo)
	})

	t.Run("timezone defaults to Asia/Seoul", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "Asia/Seoul", cfg.Timezone)
	})

	t.Run("missing file errors", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		clearEnv(t)
		path := writeConfigFile(t, "token: [unclosed")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Token:       "t",
		SourceOwner: "acme",
		SourceRepo:  "website",
		DestOwner:   "acme",
		DestRepo:    "reports",
		Timezone:    "Asia/Seoul",
	}

	testCases := []struct {
		name           string
		mutate         func(c *Config)
		expectedErrMsg string
	}{
		{name: "valid config passes", mutate: func(c *Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.Token = "" }, expectedErrMsg: "token is not set"},
		{name: "missing source repo", mutate: func(c *Config) { c.SourceRepo = "" }, expectedErrMsg: "source repository is not set"},
		{name: "missing destination owner", mutate: func(c *Config) { c.DestOwner = "" }, expectedErrMsg: "destination repository is not set"},
		{name: "bogus timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, expectedErrMsg: "invalid timezone"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.expectedErrMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedErrMsg)
		})
	}
}
