package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	svc, err := NewAuthService(privPEM, pubPEM, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(t)

	pair, err := svc.GenerateTokenPair(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, pair.RefreshID)

	access, err := svc.ValidateToken(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.True(t, access.MustChangePassword)

	refresh, err := svc.ValidateToken(pair.RefreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshID, refresh.ID)
}

func TestValidateToken_WrongType(t *testing.T) {
	svc := newTestService(t)
	pair, err := svc.GenerateTokenPair(1, false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(t)
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }
	pair, err := svc.GenerateTokenPair(1, false)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(pair.AccessToken, TokenTypeAccess)
	assert.Error(t, err)
}

func TestValidateToken_ForeignKey(t *testing.T) {
	a := newTestService(t)
	b := newTestService(t)
	pair, err := a.GenerateTokenPair(1, false)
	require.NoError(t, err)

	_, err = b.ValidateToken(pair.AccessToken, TokenTypeAccess)
	assert.Error(t, err)
}

func TestPasswordHelpers(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong horse", hash))

	assert.ErrorIs(t, ValidatePassword("short"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("long enough"))

	p1, err := GenerateRandomPassword(0)
	require.NoError(t, err)
	p2, err := GenerateRandomPassword(0)
	require.NoError(t, err)
	assert.Len(t, p1, 32)
	assert.NotEqual(t, p1, p2)
}
