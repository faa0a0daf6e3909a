package oauthflow_test

import (
	"testing"

	"github.com/ACG22333/Antigravity2Api/oauthflow"
	"github.com/stretchr/testify/require"
)

func TestRenderResultPage(t *testing.T) {
	t.Run("success page", func(t *testing.T) {
		page := oauthflow.RenderResultPage(true, "Account user@example.com added successfully.", "state-123")
		require.Contains(t, page, "Login Successful")
		require.Contains(t, page, "Account user@example.com added successfully.")
		require.Contains(t, page, `"state":"state-123"`)
		require.Contains(t, page, `"type":"oauth_result"`)
		require.Contains(t, page, `"success":true`)
		require.Contains(t, page, "window.opener.postMessage(payload, window.location.origin)")
		require.Contains(t, page, `id="countdown"`)
	})

	t.Run("failure page", func(t *testing.T) {
		page := oauthflow.RenderResultPage(false, "Token exchange failed: boom", "state-456")
		require.Contains(t, page, "Login Failed")
		require.Contains(t, page, `"success":false`)
	})

	t.Run("escapes hostile messages", func(t *testing.T) {
		hostile := `</script><script>alert("pwned")</script> & 'quotes' < >`
		page := oauthflow.RenderResultPage(false, hostile, "state-789")

		require.NotContains(t, page, `<script>alert`)
		require.NotContains(t, page, `</script><script>`)
		// The JSON payload escapes "<" so the literal closing tag cannot
		// appear inside the script block.
		require.Contains(t, page, `\u003c`)
	})

	t.Run("escapes hostile state", func(t *testing.T) {
		page := oauthflow.RenderResultPage(true, "ok", `"></script><script>alert(1)`)
		require.NotContains(t, page, `</script><script>alert`)
	})
}
