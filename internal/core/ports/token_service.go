package ports

import "github.com/cityreporter/city-reporter-api/internal/core/domain"

// TokenService issues and validates the stateless signed tokens that prove
// identity between requests. Tokens are never persisted; every use is
// verified by signature and expiry.
type TokenService interface {
	// IssueAccessToken embeds user id, email and role; short configured TTL.
	IssueAccessToken(user *domain.User) (string, error)
	// IssueRefreshToken embeds the email subject only; 7-day TTL.
	IssueRefreshToken(user *domain.User) (string, error)
	// Validate fails closed: false on any parse, signature, subject or
	// expiry failure. It never returns an error to the caller.
	Validate(token string, user *domain.User) bool
	// ExtractSubject returns the subject email, or domain.ErrInvalidToken
	// when the token cannot be parsed or signature-verified.
	ExtractSubject(token string) (string, error)
}
