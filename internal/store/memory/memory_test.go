package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillratedash/internal/store"
)

func TestChallengeLifecycle(t *testing.T) {
	s := NewStore()

	ch, err := s.GetChallenge("alice@meridianfoods.in")
	require.NoError(t, err)
	assert.Nil(t, ch)

	issued := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.PutChallenge(store.Challenge{
		Address:  "alice@meridianfoods.in",
		CodeHash: "aaa",
		IssuedAt: issued,
	}))

	ch, err = s.GetChallenge("alice@meridianfoods.in")
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, "aaa", ch.CodeHash)

	// Put with the same address overwrites, never adds.
	require.NoError(t, s.PutChallenge(store.Challenge{
		Address:  "alice@meridianfoods.in",
		CodeHash: "bbb",
		IssuedAt: issued.Add(time.Minute),
		Attempts: 0,
	}))
	ch, err = s.GetChallenge("alice@meridianfoods.in")
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, "bbb", ch.CodeHash)

	require.NoError(t, s.DeleteChallenge("alice@meridianfoods.in"))
	ch, err = s.GetChallenge("alice@meridianfoods.in")
	require.NoError(t, err)
	assert.Nil(t, ch)
}

func TestChallengeCopyOnRead(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.PutChallenge(store.Challenge{Address: "a@b.cd", Attempts: 1}))

	ch, err := s.GetChallenge("a@b.cd")
	require.NoError(t, err)
	ch.Attempts = 99

	again, err := s.GetChallenge("a@b.cd")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Attempts, "mutating a returned challenge must not touch the store")
}

func TestAttemptWindowPruning(t *testing.T) {
	s := NewStore()
	base := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.AppendAttempt("a@b.cd", store.ActionRequestCode, base))
	require.NoError(t, s.AppendAttempt("a@b.cd", store.ActionRequestCode, base.Add(30*time.Minute)))
	require.NoError(t, s.AppendAttempt("a@b.cd", store.ActionRequestCode, base.Add(59*time.Minute)))

	cnt, err := s.CountAttemptsSince("a@b.cd", store.ActionRequestCode, base)
	require.NoError(t, err)
	assert.Equal(t, 3, cnt)

	// Only entries inside the trailing window survive a count.
	cnt, err = s.CountAttemptsSince("a@b.cd", store.ActionRequestCode, base.Add(20*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, cnt)

	cnt, err = s.CountAttemptsSince("a@b.cd", store.ActionRequestCode, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, cnt)
}

func TestAttemptKindsIndependent(t *testing.T) {
	s := NewStore()
	at := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.AppendAttempt("a@b.cd", store.ActionRequestCode, at))
	require.NoError(t, s.AppendAttempt("a@b.cd", store.ActionVerifyCode, at))
	require.NoError(t, s.AppendAttempt("a@b.cd", store.ActionVerifyCode, at))

	cnt, err := s.CountAttemptsSince("a@b.cd", store.ActionRequestCode, at.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, cnt)

	require.NoError(t, s.ClearAttempts("a@b.cd", store.ActionVerifyCode))
	cnt, err = s.CountAttemptsSince("a@b.cd", store.ActionVerifyCode, at.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, cnt)

	cnt, err = s.CountAttemptsSince("a@b.cd", store.ActionRequestCode, at.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, cnt, "clearing one kind must not touch the other")
}
