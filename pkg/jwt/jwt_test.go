package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(t *testing.T, ttl time.Duration) (*Manager, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
	m, err := NewManager("super-secret", ttl, WithClock(clock.Now))
	require.NoError(t, err)
	return m, clock
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager("", time.Hour)
	assert.ErrorIs(t, err, ErrSecretNotConfigured)

	_, err = NewManager("secret", 0)
	assert.Error(t, err)
}

func TestIssueAndVerify_Success(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	tok, err := m.Issue(42, "admin", 0)
	require.NoError(t, err)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestVerify_ExpiresAfterTTL(t *testing.T) {
	m, clock := newTestManager(t, 10*time.Second)

	tok, err := m.Issue(7, "employee", 0)
	require.NoError(t, err)

	clock.Advance(9 * time.Second)
	_, err = m.Verify(tok)
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestIssue_ExplicitTTLOverridesDefault(t *testing.T) {
	m, clock := newTestManager(t, time.Hour)

	tok, err := m.Issue(7, "", 5*time.Second)
	require.NoError(t, err)

	clock.Advance(6 * time.Second)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_TamperedToken(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	tok, err := m.Issue(7, "manager", 0)
	require.NoError(t, err)
	require.Len(t, strings.Split(tok, "."), 3)

	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	accepted := 0
	for pos := 0; pos < len(tok); pos++ {
		if tok[pos] == '.' {
			continue
		}
		for _, r := range alphabet {
			if byte(r) == tok[pos] {
				continue
			}
			tampered := []byte(tok)
			tampered[pos] = byte(r)

			if _, err := m.Verify(string(tampered)); !errors.Is(err, ErrInvalid) {
				accepted++
				t.Errorf("byte %d %q->%q: got %v", pos, tok[pos], r, err)
			}
		}
	}
	assert.Zero(t, accepted)
}

func TestVerify_TamperedLastSignatureCharacter(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	tok, err := m.Issue(42, "employee", 0)
	require.NoError(t, err)

	last := len(tok) - 1
	for _, r := range "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_" {
		if byte(r) == tok[last] {
			continue
		}
		_, err := m.Verify(tok[:last] + string(r))
		assert.ErrorIs(t, err, ErrInvalid, "last char %q", r)
	}
}

func TestVerify_WrongSecretAndGarbage(t *testing.T) {
	m, clock := newTestManager(t, time.Hour)
	other, err := NewManager("another-secret", time.Hour, WithClock(clock.Now))
	require.NoError(t, err)

	tok, err := other.Issue(7, "", 0)
	require.NoError(t, err)

	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = m.Verify("")
	assert.ErrorIs(t, err, ErrInvalid)
}
