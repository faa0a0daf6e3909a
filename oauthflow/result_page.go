package oauthflow

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/rs/zerolog/log"
)

// resultPayload is handed to the window that opened the consent flow
// via postMessage. json.Marshal escapes "<" to \u003c, so the inline
// payload can never terminate the surrounding script tag early.
type resultPayload struct {
	Type    string `json:"type"`
	State   string `json:"state"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type resultPageData struct {
	Success bool
	Message string
	Payload template.JS
}

var resultPageTmpl = template.Must(template.New("oauth_result").Parse(resultPageHTML))

// RenderResultPage produces the document served back to the browser tab
// after the provider callback. The page posts the result to its opener
// window (best-effort, same origin only), shows a banner and tries to
// close itself after a short countdown. Delivery to the opener carries
// no guarantee; polling the session status is the durable channel.
func RenderResultPage(success bool, message, state string) string {
	payload, err := json.Marshal(resultPayload{
		Type:    "oauth_result",
		State:   state,
		Success: success,
		Message: message,
	})
	if err != nil {
		// Marshalling a flat struct of strings cannot fail; guard anyway.
		log.Err(err).Msg("Failed to marshal oauth result payload")
		payload = []byte(`{"type":"oauth_result","success":false,"message":"internal error"}`)
	}

	var buf bytes.Buffer
	data := resultPageData{
		Success: success,
		Message: message,
		Payload: template.JS(payload),
	}
	if err := resultPageTmpl.Execute(&buf, data); err != nil {
		log.Err(err).Msg("Failed to render oauth result page")
		return "<!DOCTYPE html><html><body><p>Login flow finished. You can close this window.</p></body></html>"
	}
	return buf.String()
}

const resultPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{if .Success}}Login Successful{{else}}Login Failed{{end}} - Antigravity2Api</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
            margin: 0;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            padding: 1rem;
        }
        .container {
            text-align: center;
            background: white;
            padding: 2.5rem;
            border-radius: 12px;
            box-shadow: 0 10px 25px rgba(0,0,0,0.1);
            max-width: 480px;
            width: 100%;
        }
        .icon {
            width: 64px;
            height: 64px;
            margin: 0 auto 1.5rem;
            border-radius: 50%;
            display: flex;
            align-items: center;
            justify-content: center;
            color: white;
            font-size: 2rem;
            font-weight: bold;
            background: {{if .Success}}#10b981{{else}}#ef4444{{end}};
        }
        h1 {
            color: #1f2937;
            margin-bottom: 1rem;
            font-size: 1.75rem;
            font-weight: 600;
        }
        .message {
            color: #6b7280;
            margin-bottom: 1.5rem;
            font-size: 1rem;
            line-height: 1.5;
            word-break: break-word;
        }
        .countdown {
            color: #9ca3af;
            font-size: 0.75rem;
            margin-top: 1rem;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="icon">{{if .Success}}&#10003;{{else}}&#10007;{{end}}</div>
        <h1>{{if .Success}}Login Successful{{else}}Login Failed{{end}}</h1>
        <p class="message">{{.Message}}</p>
        <div class="countdown">This window will close automatically in <span id="countdown">3</span> seconds</div>
        <div class="countdown" id="close-note"></div>
    </div>

    <script>
        var payload = {{.Payload}};

        // Best-effort notification of the window that opened this tab.
        // Restricted to the current origin so the result cannot leak to
        // an unrelated site; failures are swallowed because the polling
        // endpoint remains available.
        try {
            if (window.opener && !window.opener.closed) {
                window.opener.postMessage(payload, window.location.origin);
            }
        } catch (e) {
            // ignored
        }

        var remaining = 3;
        var countdownElement = document.getElementById('countdown');
        var timer = setInterval(function () {
            remaining--;
            if (countdownElement) {
                countdownElement.textContent = remaining;
            }
            if (remaining <= 0) {
                clearInterval(timer);
                window.close();
                // window.close is a no-op for tabs the script did not
                // open; fall back to asking the user.
                setTimeout(function () {
                    var note = document.getElementById('close-note');
                    if (note) {
                        note.textContent = 'Please close this window manually.';
                    }
                }, 500);
            }
        }, 1000);
    </script>
</body>
</html>
`
