package oauth

import (
	"net/url"
	"testing"

	"airops-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"
)

func TestGmailOAuth_GenerateAuthURL(t *testing.T) {
	o := NewGmailOAuth("client-id", "secret", "", logger.NewNopLogger())

	raw := o.GenerateAuthURL("xyz")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	q := parsed.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "xyz", q.Get("state"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, gmail.GmailSendScope, q.Get("scope"))
	assert.Equal(t, RedirectURL, q.Get("redirect_uri"))
}

func TestGmailOAuth_Configured(t *testing.T) {
	assert.False(t, NewGmailOAuth("id", "secret", "", logger.NewNopLogger()).Configured())
	assert.True(t, NewGmailOAuth("id", "secret", "refresh", logger.NewNopLogger()).Configured())
}
