package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SANITY_PROJECT_ID", "abc123")
	t.Setenv("SANITY_DATASET", "staging")
	t.Setenv("REVALIDATE_SECONDS", "30")
	t.Setenv("COMMENT_RATE_LIMIT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "abc123", cfg.SanityProjectID)
	assert.Equal(t, "staging", cfg.SanityDataset)
	assert.Equal(t, 30*time.Second, cfg.Revalidate)
	assert.Equal(t, 3, cfg.CommentRateLimit)
	assert.Equal(t, "http://127.0.0.1:9090/api/createComment", cfg.CommentEndpoint)
	assert.Equal(t, "http://localhost:9090", cfg.SiteURL)
}

func TestLoadConfig_TrustedProxies(t *testing.T) {
	t.Setenv("SANITY_PROJECT_ID", "abc123")

	t.Setenv("TRUSTED_PROXIES", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 192.168.0.0/16,")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.TrustedProxies)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SANITY_PROJECT_ID", "")
	t.Setenv("SANITY_DATASET", "")
	t.Setenv("REVALIDATE_SECONDS", "")
	t.Setenv("NEXT_PUBLIC_SANITY_PROJECT_ID", "legacy")
	t.Setenv("NEXT_PUBLIC_SANITY_DATASET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "legacy", cfg.SanityProjectID)
	assert.Equal(t, "production", cfg.SanityDataset)
	assert.Equal(t, "2021-10-21", cfg.SanityAPIVersion)
	assert.Equal(t, 60*time.Second, cfg.Revalidate)
	assert.False(t, cfg.MailEnabled())
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("SANITY_PROJECT_ID", "abc123")

	t.Run("revalidate", func(t *testing.T) {
		t.Setenv("REVALIDATE_SECONDS", "soon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("backend", func(t *testing.T) {
		t.Setenv("CONTENT_BACKEND", "mongo")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing project", func(t *testing.T) {
		t.Setenv("SANITY_PROJECT_ID", "")
		t.Setenv("NEXT_PUBLIC_SANITY_PROJECT_ID", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("postgres needs no project", func(t *testing.T) {
		t.Setenv("SANITY_PROJECT_ID", "")
		t.Setenv("NEXT_PUBLIC_SANITY_PROJECT_ID", "")
		t.Setenv("CONTENT_BACKEND", "postgres")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.ContentBackend)
	})
}
