package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
)

const defaultAccessTTL = 15 * time.Minute

// refreshTTL is fixed at 7 days.
const refreshTTL = 7 * 24 * time.Hour

// TokenService signs and verifies HS256 tokens with a single process-wide
// symmetric secret. No key rotation; tokens are stateless.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
}

func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL}
}

// IssueAccessToken embeds user id, email and role alongside the subject.
func (s *TokenService) IssueAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.Email,
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(s.accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// IssueRefreshToken carries the subject only.
func (s *TokenService) IssueRefreshToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Email,
		"iat": now.Unix(),
		"exp": now.Add(refreshTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate fails closed. Signature, subject match and expiry are
// independent gates; all must pass. Token contents are never logged.
func (s *TokenService) Validate(token string, user *domain.User) bool {
	claims, err := s.parse(token)
	if err != nil {
		return false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub != user.Email {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}

// ExtractSubject returns the subject email from a signature-verified token.
// Expiry is intentionally not checked here; callers that care use Validate.
func (s *TokenService) ExtractSubject(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrInvalidToken
	}
	return sub, nil
}

// parse verifies the signature and returns the claims. Expiry validation is
// disabled so Validate can apply it as a separate gate.
func (s *TokenService) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: parse failed", domain.ErrInvalidToken)
	}
	return claims, nil
}
