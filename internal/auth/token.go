package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims 是会话令牌的负载：只有 sub（管理员邮箱）、iat 和 exp。
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer mints signed session tokens for authenticated admins.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an Issuer. The ttl must come from the configured
// JWT expire hours so token generation and revocation sweeping agree on
// the validity window.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token validity window.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue 为指定邮箱签发 JWT。调用方负责确认该邮箱属于已登记的管理员。
func (i *Issuer) Issue(email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// parseClaims validates signature and expiry and returns the claims.
// Errors are normalized to the package sentinels.
func parseClaims(secret []byte, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		// malformed tokens and wrong-key signatures are the same thing
		// to us: not a token we signed
		return nil, ErrBadSignature
	}
	if !token.Valid {
		return nil, ErrBadSignature
	}
	return claims, nil
}
