package jwt

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.expire", "1h")

	token, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.expire", "1h")

	token, err := GenerateToken(7)
	require.NoError(t, err)

	viper.Set("jwt.secret", "another-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.expire", time.Nanosecond.String())

	token, err := GenerateToken(7)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestGenerateToken_MissingSecret(t *testing.T) {
	viper.Set("jwt.secret", "")

	_, err := GenerateToken(7)
	assert.Error(t, err)
}
