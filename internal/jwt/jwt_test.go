package jwt

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupKeys writes a fresh key pair to disk and loads it the same way the server does
func setupKeys(t *testing.T) {
	t.Helper()

	privatePEM, publicPEM, err := GenerateKeyPair()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.key"), privatePEM, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.pem"), publicPEM, 0644))

	privateKey = loadPrivateKey(filepath.Join(dir, "private.key"))
	publicKey = loadPublicKey(filepath.Join(dir, "public.pem"))
}

func signClaims(t *testing.T, claims jwtgo.StandardClaims) string {
	t.Helper()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(privateKey)
	require.NoError(t, err)
	return signedToken
}

func TestSignAndValidPlayerID(t *testing.T) {
	setupKeys(t)

	sign, err := Sign("player-18")
	assert.NoError(t, err)

	id, err := ValidPlayerID(sign)
	assert.NoError(t, err)
	assert.Equal(t, "player-18", id)

	_, err = Sign("")
	assert.EqualError(t, err, "player id is required")
}

func TestValidPlayerID_InvalidAudience(t *testing.T) {
	setupKeys(t)

	id, err := ValidPlayerID(signClaims(t, jwtgo.StandardClaims{
		Audience: "different-audience",
		Id:       uuid.New().String(),
		IssuedAt: time.Now().Unix(),
		Issuer:   Issuer,
		Subject:  "15",
	}))

	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, "", id)
}

func TestValidPlayerID_InvalidIssuer(t *testing.T) {
	setupKeys(t)

	id, err := ValidPlayerID(signClaims(t, jwtgo.StandardClaims{
		Audience: Audience,
		Id:       uuid.New().String(),
		IssuedAt: time.Now().Unix(),
		Issuer:   "invalid-issuer",
		Subject:  "15",
	}))

	assert.EqualError(t, err, "invalid issuer")
	assert.Equal(t, "", id)
}

func TestValidPlayerID_MissingSubject(t *testing.T) {
	setupKeys(t)

	_, err := ValidPlayerID(signClaims(t, jwtgo.StandardClaims{
		Audience: Audience,
		IssuedAt: time.Now().Unix(),
		Issuer:   Issuer,
	}))

	assert.EqualError(t, err, "missing subject")
}

func TestValidPlayerID_Expired(t *testing.T) {
	setupKeys(t)

	id, err := ValidPlayerID(signClaims(t, jwtgo.StandardClaims{
		Audience:  Audience,
		Id:        uuid.New().String(),
		IssuedAt:  time.Now().Unix(),
		Issuer:    Issuer,
		ExpiresAt: time.Now().Add(time.Hour * -1).Unix(),
		Subject:   "15",
	}))

	if err != nil {
		assert.Regexp(t, "^token is expired", err.Error())
	} else {
		t.Error("expected an error")
	}
	assert.Equal(t, "", id)
}

func TestValidPlayerID_WrongKey(t *testing.T) {
	setupKeys(t)
	signed, err := Sign("player")
	require.NoError(t, err)

	// a different server key cannot validate the token
	previous := publicKey
	setupKeys(t)
	assert.NotEqual(t, previous.N, publicKey.N)

	_, err = ValidPlayerID(signed)
	assert.Error(t, err)
}

func TestSetKey(t *testing.T) {
	setupKeys(t)
	key := privateKey

	privateKey, publicKey = nil, nil
	SetKey(key)

	signed, err := Sign("abc")
	require.NoError(t, err)
	id, err := ValidPlayerID(signed)
	assert.NoError(t, err)
	assert.Equal(t, "abc", id)
}
