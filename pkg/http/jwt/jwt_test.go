package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	aToken, rToken, err := GenToken("user-1", secret, 30, 60)
	require.NoError(t, err)
	require.NotEmpty(t, aToken)
	require.NotEmpty(t, rToken)

	claims, err := ParseToken(aToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserId)
	assert.Equal(t, "compass", claims.Issuer)
}

func TestParseTokenWrongSecret(t *testing.T) {
	aToken, _, err := GenToken("user-1", []byte("right-secret"), 30, 60)
	require.NoError(t, err)

	_, err = ParseToken(aToken, "wrong-secret")
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "secret")
	assert.Error(t, err)
}
