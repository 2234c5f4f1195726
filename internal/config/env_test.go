package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-agecalc/internal/config"
)

// clearEnv blanks every variable LoadEnv reads so host settings cannot leak in.
// t.Setenv restores the previous values after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvGeminiKey, config.EnvLegacyKey, config.EnvOpenAIKey,
		config.EnvProvider, config.EnvModel, config.EnvBaseURL,
		config.EnvLang, config.EnvPort, config.EnvInsightTimeout,
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir()) // no .env here

	cfg, err := config.LoadEnv()
	require.NoError(t, err)

	want := config.Env{
		Provider:       config.DefaultProvider,
		Lang:           config.DefaultLanguage,
		Port:           config.DefaultPort,
		InsightTimeout: config.DefaultInsightTimeout,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadEnv() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, cfg.APIKey())
}

func TestLoadEnv_FromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "AGECALC_PROVIDER=openai\nOPENAI_API_KEY=sk-file\nAGECALC_INSIGHT_TIMEOUT=5s\nAGECALC_LANG=id\n"
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))

	// Real environment wins over the file.
	t.Setenv(config.EnvLang, "en")

	cfg, err := config.LoadEnv(path)
	require.NoError(t, err)

	assert.Equal(t, config.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-file", cfg.APIKey())
	assert.Equal(t, 5*time.Second, cfg.InsightTimeout)
	assert.Equal(t, "en", cfg.Lang)
}

func TestLoadEnv_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := config.LoadEnv(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrEnvFile)
}

func TestLoadEnv_BadDuration(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvInsightTimeout, "soon")

	_, err := config.LoadEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrEnvParse)
}

func TestEnv_APIKey(t *testing.T) {
	tests := []struct {
		name string
		env  config.Env
		want string
	}{
		{"Gemini key", config.Env{Provider: config.ProviderGemini, GeminiKey: "g", LegacyKey: "l"}, "g"},
		{"Legacy alias", config.Env{Provider: config.ProviderGemini, LegacyKey: "l"}, "l"},
		{"OpenAI ignores Gemini keys", config.Env{Provider: config.ProviderOpenAI, GeminiKey: "g"}, ""},
		{"OpenAI key", config.Env{Provider: config.ProviderOpenAI, OpenAIKey: "o"}, "o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.env.APIKey())
		})
	}
}
