package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("session-secret", "email-secret", time.Hour, time.Hour)
}

func TestSessionToken_RoundTrip(t *testing.T) {
	t.Parallel()
	m := newTestManager()

	tok, exp, err := m.GenerateSessionToken("u1", "Juan Mata", "jo.mata@gmail.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseSessionToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Juan Mata", claims.Name)
	assert.Equal(t, "jo.mata@gmail.com", claims.Email)
	assert.Equal(t, PurposeSession, claims.Purpose)
}

func TestTokens_NotInterchangeable(t *testing.T) {
	t.Parallel()
	m := newTestManager()

	confirm, _, err := m.GenerateConfirmationToken("u1")
	require.NoError(t, err)
	_, err = m.ParseSessionToken(confirm)
	assert.ErrorIs(t, err, ErrInvalidToken)

	session, _, err := m.GenerateSessionToken("u1", "n", "e@x.y")
	require.NoError(t, err)
	_, err = m.ParseConfirmationToken(session)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_PurposeCheckedEvenWithSharedSecret(t *testing.T) {
	t.Parallel()
	a := NewTokenIssuer("shared", time.Hour, PurposeConfirmation)
	b := NewTokenIssuer("shared", time.Hour, PurposeSession)

	tok, _, err := a.Issue(Claims{UserID: "u1"})
	require.NoError(t, err)
	_, err = b.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()
	iss := NewTokenIssuer("s", time.Minute, PurposeSession)
	iss.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tok, _, err := iss.Issue(Claims{UserID: "u1"})
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_NoExpiryWhenTTLZero(t *testing.T) {
	t.Parallel()
	iss := NewTokenIssuer("s", 0, PurposeConfirmation)
	tok, exp, err := iss.Issue(Claims{UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, exp.IsZero())

	claims, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestVerify_WrongSecretAndMalformed(t *testing.T) {
	t.Parallel()
	tok, _, err := NewTokenIssuer("right", time.Hour, PurposeSession).Issue(Claims{UserID: "u1"})
	require.NoError(t, err)

	_, err = NewTokenIssuer("wrong", time.Hour, PurposeSession).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenIssuer("right", time.Hour, PurposeSession).Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	tampered := tok[:strings.LastIndex(tok, ".")] + ".AAAA"
	_, err = NewTokenIssuer("right", time.Hour, PurposeSession).Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	claims := &Claims{UserID: "u1", Purpose: PurposeSession}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("s", time.Hour, PurposeSession).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RequiresSubject(t *testing.T) {
	t.Parallel()
	iss := NewTokenIssuer("s", time.Hour, PurposeSession)
	tok, _, err := iss.Issue(Claims{})
	require.NoError(t, err)
	_, err = iss.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
