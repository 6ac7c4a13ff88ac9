package util

import (
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	BcryptCost = bcrypt.MinCost

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotContains(t, hash, "s3cret")

	ok, err := VerifyHash(hash, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyHash(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyHashRejectsGarbage(t *testing.T) {
	_, err := VerifyHash("not base64 !!", "x")
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, log.WARN, lvl)

	_, err = ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestDefaultBindAddressFromEnv(t *testing.T) {
	t.Setenv("IP", "127.0.0.1")
	t.Setenv("PORT", "8080")
	assert.Equal(t, "127.0.0.1:8080", DefaultBindAddressFromEnv())
}

func TestQRCodeDataURI(t *testing.T) {
	uri, err := QRCodeDataURI("http://localhost:5000/recipe/abc")
	require.NoError(t, err)
	assert.Contains(t, uri, "data:image/png;base64,")
}
