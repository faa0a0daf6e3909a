package server

import (
	"io"
	"net/http"

	"github.com/ACG22333/Antigravity2Api/oauthflow"
)

// OAuthCallbackHandler receives Google's redirect after the user
// completes (or denies) consent. Every outcome, including failures, is
// served as the HTML result page with status 200 so the embedded script
// always runs and can notify the opener window.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Parse form to support both GET (query params) and POST (form_post response mode)
		// r.FormValue works for both query params and POST form data
		params := oauthflow.CallbackParams{
			State:            r.FormValue("state"),
			Code:             r.FormValue("code"),
			Error:            r.FormValue("error"),
			ErrorDescription: r.FormValue("error_description"),
		}

		result := s.flow.CompleteCallback(r.Context(), params)
		page := oauthflow.RenderResultPage(result.Success, result.Message, params.State)

		w.Header().Set("Content-Type", contentTypeHTML)
		_, _ = io.WriteString(w, page)
	}
}
