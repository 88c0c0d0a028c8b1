package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestNewAdminToken_RoundTrip(t *testing.T) {
	tok, err := NewAdminToken("test-secret", 30)
	assert.NoError(t, err)
	assert.NotEmpty(t, tok.Token)

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "admin", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestNewAdminToken_WrongKeyFailsVerification(t *testing.T) {
	tok, err := NewAdminToken("test-secret", 30)
	assert.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := HashSecret("open-sesame", 4)
	assert.NoError(t, err)

	assert.True(t, VerifySecret(hash, "open-sesame"))
	assert.False(t, VerifySecret(hash, "wrong"))
	assert.False(t, VerifySecret("not-a-hash", "open-sesame"))
}
