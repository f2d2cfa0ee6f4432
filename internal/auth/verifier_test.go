package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testProject = "unimind-test"

type tokenOverrides struct {
	iss string
	aud string
	sub string
	exp time.Time
	kid string
}

func newTestVerifier(t *testing.T) (*firebaseVerifier, *rsa.PrivateKey) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		set := jwkSet{Keys: []jwk{{
			Kty: "RSA",
			Kid: "test-kid",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(priv.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(priv.E)).Bytes()),
		}}}
		_ = json.NewEncoder(w).Encode(set)
	}))
	t.Cleanup(srv.Close)

	return &firebaseVerifier{
		projectID: testProject,
		issuer:    "https://securetoken.google.com/" + testProject,
		jwks:      newJWKSCache(srv.Client(), srv.URL),
	}, priv
}

func signToken(t *testing.T, priv *rsa.PrivateKey, o tokenOverrides) string {
	t.Helper()

	if o.iss == "" {
		o.iss = "https://securetoken.google.com/" + testProject
	}
	if o.aud == "" {
		o.aud = testProject
	}
	if o.sub == "" {
		o.sub = "user-123"
	}
	if o.exp.IsZero() {
		o.exp = time.Now().Add(time.Hour)
	}
	if o.kid == "" {
		o.kid = "test-kid"
	}

	claims := jwt.MapClaims{
		"iss":            o.iss,
		"aud":            o.aud,
		"sub":            o.sub,
		"user_id":        o.sub,
		"exp":            o.exp.Unix(),
		"iat":            time.Now().Add(-time.Minute).Unix(),
		"email":          "student@example.edu",
		"email_verified": true,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = o.kid

	signed, err := tok.SignedString(priv)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	v, priv := newTestVerifier(t)

	got, err := v.Verify(context.Background(), signToken(t, priv, tokenOverrides{sub: "abc"}))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.UID != "abc" {
		t.Fatalf("uid: got=%q want=%q", got.UID, "abc")
	}
	if got.Email != "student@example.edu" || !got.EmailVerified {
		t.Fatalf("claims mapping: %+v", got)
	}
}

func TestVerifyRejections(t *testing.T) {
	v, priv := newTestVerifier(t)

	cases := []struct {
		name string
		o    tokenOverrides
	}{
		{"expired", tokenOverrides{exp: time.Now().Add(-time.Hour)}},
		{"wrong issuer", tokenOverrides{iss: "https://securetoken.google.com/other"}},
		{"wrong audience", tokenOverrides{aud: "other-project"}},
		{"unknown kid", tokenOverrides{kid: "nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.Verify(context.Background(), signToken(t, priv, tc.o)); err == nil {
				t.Fatalf("expected verification failure")
			}
		})
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	v, _ := newTestVerifier(t)

	for _, tok := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		if _, err := v.Verify(context.Background(), tok); err == nil {
			t.Fatalf("expected failure for token %q", tok)
		}
	}
}

func TestJWKSKeySurvivesRefreshFailure(t *testing.T) {
	v, priv := newTestVerifier(t)

	tok := signToken(t, priv, tokenOverrides{})
	if _, err := v.Verify(context.Background(), tok); err != nil {
		t.Fatalf("first verify: %v", err)
	}

	// Endpoint gone, cached key is still fresh enough to serve.
	v.jwks.jwksURL = "http://127.0.0.1:0/unreachable"
	if _, err := v.Verify(context.Background(), tok); err != nil {
		t.Fatalf("verify with cached key: %v", err)
	}
}
