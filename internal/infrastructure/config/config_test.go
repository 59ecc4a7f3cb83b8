package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MAILGUN_API_KEY", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("BAG_ENRICH_DELAY_MS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, ProviderMailgun, cfg.EmailProvider)
	assert.Equal(t, "https://api.mailgun.net", cfg.MailgunBaseURL)
	assert.Empty(t, cfg.MailgunAPIKey)
	assert.Equal(t, 500*time.Millisecond, cfg.BagEnrichDelay)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "MONGO")
	t.Setenv("MAILGUN_BASE_URL", "https://api.eu.mailgun.net/")
	t.Setenv("BAG_ENRICH_DELAY_MS", "25")
	t.Setenv("READ_TIMEOUT", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreMongo, cfg.StoreBackend)
	assert.Equal(t, "https://api.eu.mailgun.net", cfg.MailgunBaseURL)
	assert.Equal(t, 25*time.Millisecond, cfg.BagEnrichDelay)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
}
