package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

func TestProviderVerifiesRSAAndEC(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JSONWebKey{
			{Kid: "rsa-1", Kty: "RSA", N: b64(rsaKey.N.Bytes()), E: b64(big.NewInt(int64(rsaKey.E)).Bytes())},
			{Kid: "ec-1", Kty: "EC", Crv: "P-256", X: b64(ecKey.X.Bytes()), Y: b64(ecKey.Y.Bytes())},
			{Kid: "odd", Kty: "OKP"},
		}})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL)
	claims := jwt.MapClaims{"sub": "user-1"}

	t.Run("Should verify an RS256 token", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		tok.Header["kid"] = "rsa-1"
		signed, err := tok.SignedString(rsaKey)
		require.NoError(t, err)

		parsed, err := jwt.Parse(signed, p.KeyFunc)
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
	})

	t.Run("Should verify an ES256 token from the cache", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
		tok.Header["kid"] = "ec-1"
		signed, err := tok.SignedString(ecKey)
		require.NoError(t, err)

		_, err = jwt.Parse(signed, p.KeyFunc)
		require.NoError(t, err)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("Should reject an unknown kid", func(t *testing.T) {
		_, err := p.GetKey("missing")
		assert.Error(t, err)
	})

	t.Run("Should reject HMAC tokens", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = jwt.Parse(signed, p.KeyFunc)
		assert.Error(t, err)
	})
}
