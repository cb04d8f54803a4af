package tokenstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	FormatOpaque = "opaque"
	FormatJWT    = "jwt"
)

// Info is a local, unverified view of a token. The server stays the only
// authority on whether a token is valid.
type Info struct {
	Present   bool
	Format    string
	Subject   string
	ExpiresAt time.Time
	Expired   bool
	SavedAt   time.Time
}

// Inspect decodes the claims of JWT-shaped tokens without verifying the
// signature. Anything else is reported as opaque.
func Inspect(token string, now time.Time) Info {
	if token == "" {
		return Info{}
	}

	info := Info{Present: true, Format: FormatOpaque}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return info
	}
	info.Format = FormatJWT

	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
		info.Expired = !now.Before(exp.Time)
	}
	return info
}
