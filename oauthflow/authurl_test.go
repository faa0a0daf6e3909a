package oauthflow_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/ACG22333/Antigravity2Api/oauthflow"
	"github.com/stretchr/testify/require"
)

func TestBuildAuthURL(t *testing.T) {
	scopes := []string{
		"https://www.googleapis.com/auth/cloud-platform",
		"https://www.googleapis.com/auth/userinfo.email",
	}

	t.Run("query parameters", func(t *testing.T) {
		raw := oauthflow.BuildAuthURL("state-123", "http://localhost:3000/oauth-callback", "client-abc", scopes)
		require.True(t, strings.HasPrefix(raw, oauthflow.AuthEndpoint+"?"))

		parsed, err := url.Parse(raw)
		require.NoError(t, err)
		q := parsed.Query()
		require.Equal(t, "offline", q.Get("access_type"))
		require.Equal(t, strings.Join(scopes, " "), q.Get("scope"))
		require.Equal(t, "state-123", q.Get("state"))
		require.Equal(t, "consent", q.Get("prompt"))
		require.Equal(t, "code", q.Get("response_type"))
		require.Equal(t, "client-abc", q.Get("client_id"))
		require.Equal(t, "http://localhost:3000/oauth-callback", q.Get("redirect_uri"))
	})

	t.Run("deterministic", func(t *testing.T) {
		a := oauthflow.BuildAuthURL("s", "http://localhost:8080/oauth-callback", "c", scopes)
		b := oauthflow.BuildAuthURL("s", "http://localhost:8080/oauth-callback", "c", scopes)
		require.Equal(t, a, b)
	})
}
