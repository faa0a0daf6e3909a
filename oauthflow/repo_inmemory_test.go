package oauthflow_test

import (
	"testing"
	"time"

	"github.com/ACG22333/Antigravity2Api/internal/errors"
	"github.com/ACG22333/Antigravity2Api/oauthflow"
	"github.com/stretchr/testify/require"
)

const testRedirectURI = "http://localhost:3000/oauth-callback"

func TestInMemoryRepo_Create(t *testing.T) {
	repo := oauthflow.NewInMemoryRepo(30 * time.Minute)

	t.Run("returns unguessable unique tokens", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			state, err := repo.Create(testRedirectURI)
			require.NoError(t, err)
			// 32 bytes of entropy encode to 43 base64url characters
			require.GreaterOrEqual(t, len(state), 43)
			require.False(t, seen[state], "state token reused")
			seen[state] = true
		}
	})

	t.Run("rejects empty redirect URI", func(t *testing.T) {
		_, err := repo.Create("")
		require.Error(t, err)
	})

	t.Run("inserts a pending session", func(t *testing.T) {
		state, err := repo.Create(testRedirectURI)
		require.NoError(t, err)

		session, err := repo.Get(state)
		require.NoError(t, err)
		require.Equal(t, state, session.State)
		require.Equal(t, testRedirectURI, session.RedirectURI)
		require.Nil(t, session.Result)
		require.WithinDuration(t, time.Now(), session.CreatedAt, time.Second)
	})
}

func TestInMemoryRepo_Get(t *testing.T) {
	t.Run("unknown state", func(t *testing.T) {
		repo := oauthflow.NewInMemoryRepo(30 * time.Minute)
		_, err := repo.Get("no-such-state")
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})

	t.Run("evicts expired sessions", func(t *testing.T) {
		repo := oauthflow.NewInMemoryRepo(10 * time.Millisecond)
		state, err := repo.Create(testRedirectURI)
		require.NoError(t, err)

		time.Sleep(25 * time.Millisecond)

		_, err = repo.Get(state)
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})

	t.Run("evicts completed sessions on the same schedule", func(t *testing.T) {
		repo := oauthflow.NewInMemoryRepo(10 * time.Millisecond)
		state, err := repo.Create(testRedirectURI)
		require.NoError(t, err)
		require.NoError(t, repo.SetResult(state, oauthflow.Result{Success: true, Message: "done"}))

		time.Sleep(25 * time.Millisecond)

		_, err = repo.Get(state)
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})

	t.Run("returns a copy", func(t *testing.T) {
		repo := oauthflow.NewInMemoryRepo(30 * time.Minute)
		state, err := repo.Create(testRedirectURI)
		require.NoError(t, err)
		require.NoError(t, repo.SetResult(state, oauthflow.Result{Success: true, Message: "done"}))

		session, err := repo.Get(state)
		require.NoError(t, err)
		session.Result.Message = "mutated"
		session.RedirectURI = "http://evil.example"

		again, err := repo.Get(state)
		require.NoError(t, err)
		require.Equal(t, "done", again.Result.Message)
		require.Equal(t, testRedirectURI, again.RedirectURI)
	})
}

func TestInMemoryRepo_SetResult(t *testing.T) {
	t.Run("records a terminal result", func(t *testing.T) {
		repo := oauthflow.NewInMemoryRepo(30 * time.Minute)
		state, err := repo.Create(testRedirectURI)
		require.NoError(t, err)

		require.NoError(t, repo.SetResult(state, oauthflow.Result{Success: false, Message: "denied"}))

		session, err := repo.Get(state)
		require.NoError(t, err)
		require.NotNil(t, session.Result)
		require.False(t, session.Result.Success)
		require.Equal(t, "denied", session.Result.Message)
	})

	t.Run("first write wins", func(t *testing.T) {
		repo := oauthflow.NewInMemoryRepo(30 * time.Minute)
		state, err := repo.Create(testRedirectURI)
		require.NoError(t, err)

		require.NoError(t, repo.SetResult(state, oauthflow.Result{Success: true, Message: "first"}))
		err = repo.SetResult(state, oauthflow.Result{Success: false, Message: "second"})
		require.ErrorIs(t, err, errors.ErrResultAlreadySet)

		session, err := repo.Get(state)
		require.NoError(t, err)
		require.Equal(t, "first", session.Result.Message)
	})

	t.Run("absent session", func(t *testing.T) {
		repo := oauthflow.NewInMemoryRepo(30 * time.Minute)
		err := repo.SetResult("no-such-state", oauthflow.Result{Success: true, Message: "x"})
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})
}

func TestInMemoryRepo_BeginExchange(t *testing.T) {
	t.Run("claims exactly once", func(t *testing.T) {
		repo := oauthflow.NewInMemoryRepo(30 * time.Minute)
		state, err := repo.Create(testRedirectURI)
		require.NoError(t, err)

		claimed, err := repo.BeginExchange(state)
		require.NoError(t, err)
		require.True(t, claimed)

		claimed, err = repo.BeginExchange(state)
		require.NoError(t, err)
		require.False(t, claimed)
	})

	t.Run("terminal session cannot be claimed", func(t *testing.T) {
		repo := oauthflow.NewInMemoryRepo(30 * time.Minute)
		state, err := repo.Create(testRedirectURI)
		require.NoError(t, err)
		require.NoError(t, repo.SetResult(state, oauthflow.Result{Success: false, Message: "denied"}))

		claimed, err := repo.BeginExchange(state)
		require.NoError(t, err)
		require.False(t, claimed)
	})

	t.Run("absent session", func(t *testing.T) {
		repo := oauthflow.NewInMemoryRepo(30 * time.Minute)
		_, err := repo.BeginExchange("no-such-state")
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})
}
