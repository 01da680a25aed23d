// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapcc/jobly/internal/config"
	"github.com/sapcc/jobly/internal/errors"
	"github.com/sapcc/jobly/internal/policy"
)

var secret = []byte("secret-dev")

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken(secret, "u1", true, time.Hour)
	require.NoError(t, err)

	p, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.Username)
	assert.Equal(t, policy.RoleAdmin, p.Role())
}

func TestParseTokenRejects(t *testing.T) {
	token, err := CreateToken([]byte("other"), "u1", false, time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(secret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	p, err := ParseToken(secret, mustToken(t, 0))
	require.NoError(t, err)
	assert.Equal(t, policy.RoleUser, p.Role())

	_, err = ParseToken(secret, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func mustToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token, err := CreateToken(secret, "u2", false, ttl)
	require.NoError(t, err)
	return token
}

func TestRoleOfAnonymous(t *testing.T) {
	var p *Principal
	assert.Equal(t, policy.RoleAnonymous, p.Role())
	assert.Equal(t, "anonymous", p.Name())
}

func capture(t *testing.T, r *http.Request) *Principal {
	t.Helper()
	var got *Principal
	h := AuthenticateRequest(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = PrincipalFrom(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), r)
	return got
}

func TestAuthenticateRequestJWT(t *testing.T) {
	config.Global.ApiSettings.AuthStrategy = "jwt"
	config.Global.Auth.SecretKey = string(secret)
	defer func() {
		config.Global.ApiSettings.AuthStrategy = "none"
		config.Global.Auth.SecretKey = ""
	}()

	token, err := CreateToken(secret, "u1", false, time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/jobs", http.NoBody)
	r.Header.Set("Authorization", "Bearer "+token)
	p := capture(t, r)
	require.NotNil(t, p)
	assert.Equal(t, "u1", p.Username)

	r = httptest.NewRequest(http.MethodGet, "/jobs", http.NoBody)
	r.Header.Set("Authorization", "Bearer nonsense")
	assert.Nil(t, capture(t, r))

	assert.Nil(t, capture(t, httptest.NewRequest(http.MethodGet, "/jobs", http.NoBody)))
}

func TestAuthenticateRequestNone(t *testing.T) {
	config.Global.ApiSettings.AuthStrategy = "none"
	p := capture(t, httptest.NewRequest(http.MethodGet, "/jobs", http.NoBody))
	assert.Equal(t, policy.RoleAdmin, p.Role())
}

func TestAuthorize(t *testing.T) {
	config.Global.ApiSettings.PolicyFile = ""
	require.NoError(t, policy.SetPolicyEngine("rules"))
	defer func() { _ = policy.SetPolicyEngine("noop") }()

	r := httptest.NewRequest(http.MethodPost, "/jobs", http.NoBody)
	assert.Equal(t, http.StatusUnauthorized, errors.StatusCode(Authorize(r, "job:create")))

	r = r.WithContext(WithPrincipal(r.Context(), &Principal{Username: "u2"}))
	assert.Equal(t, http.StatusForbidden, errors.StatusCode(Authorize(r, "job:create")))
	assert.NoError(t, Authorize(r, "job:list"))

	r = r.WithContext(WithPrincipal(r.Context(), &Principal{Username: "u1", IsAdmin: true}))
	assert.NoError(t, Authorize(r, "job:create"))
}
