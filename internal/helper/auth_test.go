package helper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuth() Auth {
	return SetupAuth("unit-secret", 15*time.Minute, 24*time.Hour)
}

func TestTokenPairRoundTrip(t *testing.T) {
	a := testAuth()

	pair, err := a.GenerateTokenPair(7, "alice")
	require.NoError(t, err)

	user, err := a.VerifyToken("Bearer " + pair.Access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.UserID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, TokenTypeAccess, user.TokenType)
	assert.Greater(t, user.Expiry, user.Iat)

	// bare token works too
	_, err = a.VerifyToken(pair.Access)
	require.NoError(t, err)

	refresh, err := a.VerifyRefreshToken(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, uint(7), refresh.UserID)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	a := testAuth()
	pair, err := a.GenerateTokenPair(1, "bob")
	require.NoError(t, err)

	_, err = a.VerifyToken(pair.Refresh)
	assert.Error(t, err)

	_, err = a.VerifyRefreshToken(pair.Access)
	assert.Error(t, err)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	a := testAuth()
	first, err := a.GenerateToken(1, "bob", TokenTypeRefresh)
	require.NoError(t, err)
	second, err := a.GenerateToken(1, "bob", TokenTypeRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyTokenRejects(t *testing.T) {
	a := testAuth()
	valid, err := a.GenerateToken(1, "bob", TokenTypeAccess)
	require.NoError(t, err)

	expired, err := SetupAuth(a.Secret, -time.Minute, time.Hour).GenerateToken(1, "bob", TokenTypeAccess)
	require.NoError(t, err)

	otherSecret, err := SetupAuth("other", time.Minute, time.Hour).GenerateToken(1, "bob", TokenTypeAccess)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    1,
		"username":   "bob",
		"token_type": TokenTypeAccess,
	}).SignedString([]byte(a.Secret))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":        "",
		"bearer only":  "Bearer ",
		"garbage":      "Bearer not.a.jwt",
		"expired":      expired,
		"wrong secret": otherSecret,
		"no exp":       noExp,
		"tampered":     valid + "x",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := a.VerifyToken(tok)
			assert.Error(t, err)
		})
	}
}

func TestGenerateTokenRequiresUser(t *testing.T) {
	a := testAuth()
	_, err := a.GenerateToken(0, "bob", TokenTypeAccess)
	assert.Error(t, err)
	_, err = a.GenerateToken(1, "", TokenTypeAccess)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	a := testAuth()

	_, err := a.CreateHashedPassword("12345")
	assert.Error(t, err)

	hash, err := a.CreateHashedPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, a.VerifyPassword("s3cret!", hash))
	assert.Error(t, a.VerifyPassword("wrong", hash))
}
