package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("LLM_TIMEOUT", "not-a-duration")
	t.Setenv("PORT", "8000")
	t.Setenv("KNOWLEDGE_PATH", "knowledge.json")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("MAX_REQUEST_BODY_BYTES", "1048576")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, int64(1<<20), cfg.MaxRequestBodySize)
	assert.Empty(t, cfg.LLM.APIKey())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("KNOWLEDGE_PATH", "/tmp/kb.json")
	t.Setenv("SESSION_STORE", "SQLite")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("LLM_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("MAX_REQUEST_BODY_BYTES", "2048")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SessionStoreSQLite, cfg.SessionStore)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.APIKey())
	assert.Equal(t, 2*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(2048), cfg.MaxRequestBodySize)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			Port:               "8000",
			KnowledgePath:      "knowledge.json",
			SessionStore:       SessionStoreMemory,
			MaxRequestBodySize: 1024,
			LLM:                LLMConfig{Provider: ProviderOpenAI, Timeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.Port = "" }, wantErr: true},
		{name: "empty knowledge path", mutate: func(c *Config) { c.KnowledgePath = "" }, wantErr: true},
		{name: "unknown store", mutate: func(c *Config) { c.SessionStore = "redis" }, wantErr: true},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "llama" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.LLM.Timeout = 0 }, wantErr: true},
		{name: "zero body size", mutate: func(c *Config) { c.MaxRequestBodySize = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
