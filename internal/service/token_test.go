package service

import (
	"strings"
	"testing"
	"time"

	"blogging/config"
	"blogging/internal/core"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	conf := &config.Configuration{Token: config.Token{Secret: secret}}
	s, err := NewTokenService(conf)
	require.NoError(t, err)
	return s
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService(&config.Configuration{})
	assert.Error(t, err)
}

func TestTokenService_DefaultTTL(t *testing.T) {
	s := newTestTokenService(t, "secret")
	assert.Equal(t, time.Hour, s.TTL())
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	s := newTestTokenService(t, "secret")

	token, err := s.Issue("65f1c0ffee00000000000001")
	require.NoError(t, err)

	subject, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "65f1c0ffee00000000000001", subject)
}

func TestTokenService_VerifyMissing(t *testing.T) {
	s := newTestTokenService(t, "secret")
	_, err := s.Verify("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	s := newTestTokenService(t, "secret")
	_, err := s.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_VerifyTamperedPayload(t *testing.T) {
	s := newTestTokenService(t, "secret")

	first, err := s.Issue("aaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)
	second, err := s.Issue("bbbbbbbbbbbbbbbbbbbbbbbb")
	require.NoError(t, err)

	a := strings.Split(first, ".")
	b := strings.Split(second, ".")
	forged := strings.Join([]string{a[0], b[1], a[2]}, ".")

	_, err = s.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret-one")
	verifier := newTestTokenService(t, "secret-two")

	token, err := issuer.Issue("aaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	s := newTestTokenService(t, "secret")
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := s.Issue("aaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_VerifyRejectsNoneAlg(t *testing.T) {
	s := newTestTokenService(t, "secret")
	claims := core.Claims{
		PostID: "aaaaaaaaaaaaaaaaaaaaaaaa",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "aaaaaaaaaaaaaaaaaaaaaaaa",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
