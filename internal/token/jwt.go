package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/fileshare-server/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT claims carrying the session identity.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// JWT implements TokenManager backed by symmetric HMAC. Tokens are the
// only session record: there is no server-side session table and no way
// to revoke a token before its expiry.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// DefaultTTL is the session token lifetime used when none is configured.
const DefaultTTL = time.Hour

// NewJWT creates a new JWT token manager with the provided secret key and
// token lifetime.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWT{secretKey: secretKey, ttl: ttl}
}

// Issue creates a signed session token for the identity with
// expiry = now + TTL.
func (j *JWT) Issue(identity model.Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		Username: identity.Username,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Validate verifies the signature and expiry and extracts the identity.
// Rejections are typed: model.ErrTokenExpired, model.ErrTokenBadSignature
// or model.ErrTokenMalformed.
func (j *JWT) Validate(tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.Identity{}, rejectionReason(err)
	}
	if !token.Valid {
		return model.Identity{}, model.ErrTokenMalformed
	}
	if claims.Username == "" {
		return model.Identity{}, model.ErrTokenMalformed
	}
	return model.Identity{Username: claims.Username}, nil
}

func rejectionReason(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return model.ErrTokenBadSignature
	default:
		return model.ErrTokenMalformed
	}
}
