// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sapcc/jobly/internal/policy"
)

var ErrInvalidToken = errors.New("invalid token")

// Principal is the caller a request acts for. A nil *Principal is anonymous.
type Principal struct {
	Username string
	IsAdmin  bool
}

func (p *Principal) Role() policy.Role {
	switch {
	case p == nil:
		return policy.RoleAnonymous
	case p.IsAdmin:
		return policy.RoleAdmin
	default:
		return policy.RoleUser
	}
}

func (p *Principal) Name() string {
	if p == nil {
		return "anonymous"
	}
	return p.Username
}

type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// CreateToken signs a HS256 token for username. A zero ttl produces a token without expiry.
func CreateToken(secret []byte, username string, isAdmin bool, ttl time.Duration) (string, error) {
	claims := Claims{
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ParseToken(secret []byte, tokenString string) (*Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return &Principal{Username: claims.Username, IsAdmin: claims.IsAdmin}, nil
}
