package auth

import (
	"slices"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ScopeSign allows requesting signatures.
const ScopeSign = "signatures:create"

var ErrInvalidToken = errors.New("invalid token")

// Claims 签名服务 bearer token 的声明
type Claims struct {
	jwt.RegisteredClaims
	Scopes []string `json:"scopes,omitempty"`
}

// HasScope reports whether the token grants scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// TokenManager 生成和校验 HS256 token
type TokenManager struct {
	secretKey []byte
	issuer    string
	clock     time2.Clock
}

func NewTokenManager(secretKey string, issuer string, clock time2.Clock) *TokenManager {
	if clock == nil {
		clock = time2.DefaultClock
	}
	return &TokenManager{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		clock:     clock,
	}
}

// Issue creates a token for subject valid for ttl.
func (m *TokenManager) Issue(subject string, ttl time.Duration, scopes ...string) (string, error) {
	now := m.clock.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   subject,
		},
		Scopes: scopes,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verify parses the token and checks signature, issuer and validity window.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.clock.Now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidToken, "%v", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.Wrap(ErrInvalidToken, "invalid token claims")
	}

	return claims, nil
}
