package oauthflow

// Repo stores pending and completed OAuth sessions. Implementations
// must evict sessions older than their TTL before serving any
// operation; a caller can never observe an expired session.
type Repo interface {
	// Create mints a fresh unguessable state token, inserts a pending
	// session bound to redirectURI and returns the token.
	Create(redirectURI string) (string, error)

	// Get returns a copy of the session for state, or
	// errors.ErrSessionNotFound if it is absent or expired.
	Get(state string) (*Session, error)

	// SetResult records the terminal outcome for state. The first write
	// wins: a second call returns errors.ErrResultAlreadySet and leaves
	// the stored result untouched. Returns errors.ErrSessionNotFound if
	// the session is absent or expired.
	SetResult(state string, result Result) error

	// BeginExchange claims the single token-exchange attempt for state.
	// It returns true exactly once per session; false when another
	// caller holds the claim or a result has already been recorded.
	BeginExchange(state string) (bool, error)
}
