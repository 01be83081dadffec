package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soumaysikchi/portfolio/internal/lifecycle"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "portfolio.db", cfg.DBPath)
	assert.Equal(t, "/", cfg.BasePath)
	assert.Equal(t, 4*time.Second, cfg.LoadingDelay)
	assert.True(t, cfg.IntroEnabled)
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, 8760*time.Hour, cfg.VisitorRetention)
	assert.Len(t, cfg.JWTKey, 64)
	assert.Len(t, cfg.HashSalt, 32)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOADING_DELAY", "2s")
	t.Setenv("INTRO_ENABLED", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://a.dev,https://b.dev")
	t.Setenv("JWT_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.LoadingDelay)
	assert.False(t, cfg.IntroEnabled)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.AllowedOrigins)
	assert.Equal(t, "secret", cfg.JWTKey)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"TICK_INTERVAL":    "0s",
		"INTRO_SKIP_AFTER": "10s",
		"LOADING_DELAY":    "-1s",
		"COMMAND_BURST":    "0",
		"INTRO_ENABLED":    "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLifecycleMapping(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	cfg.IntroDuration = 8 * time.Second
	cfg.IntroSkipAfter = 2 * time.Second

	lc := cfg.Lifecycle()
	assert.Equal(t, 8*time.Second, lc.Intro.Duration)
	at := map[string]time.Duration{}
	for _, cue := range lc.Intro.Script {
		at[cue.Name] = cue.At
	}
	assert.Equal(t, time.Duration(0), at[lifecycle.CueCameraDolly])
	assert.Equal(t, 2*time.Second, at[lifecycle.CueSkipOffered])
	assert.Equal(t, 6*time.Second, at[lifecycle.CueSubtitle])

	assert.Equal(t, 3*time.Second, lifecycle.DefaultIntroConfig().Script[1].At, "defaults must stay untouched")
}
