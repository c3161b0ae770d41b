// internal/httpserver/token.go
//
// Signed session tokens.
// Clients receive an HS256 JWT instead of the raw session key; the token
// carries the store key (sub) and the session mode, and expires with the
// session TTL.

package httpserver

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errBadToken = errors.New("invalid session token")

// sessionClaims are the JWT claims for a session token.
type sessionClaims struct {
	Mode string `json:"mode"`
	jwt.RegisteredClaims
}

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func newTokenIssuer(secret string, ttl time.Duration) tokenIssuer {
	if secret == "" {
		secret = "dev_secret_change_me"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return tokenIssuer{secret: []byte(secret), ttl: ttl}
}

// sign creates a token for session id in mode.
func (t tokenIssuer) sign(id, mode string) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Mode: mode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})
	return tok.SignedString(t.secret)
}

// parse verifies a token and returns its session id and mode.
func (t tokenIssuer) parse(raw string) (id, mode string, err error) {
	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return "", "", errBadToken
	}
	if claims.Subject == "" || claims.Mode == "" {
		return "", "", errBadToken
	}
	return claims.Subject, claims.Mode, nil
}
