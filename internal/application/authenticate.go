package application

import (
	"strings"
	"time"

	"github.com/bratat/go-user-accounts/pkg/helpers"
)

// Identity is what a verified session token says about its bearer.
// It is taken from the signed claims alone; the store is not consulted, so
// a deleted or renamed user keeps the old identity until the token expires.
type Identity struct {
	UserID    string
	Name      string
	Email     string
	ExpiresAt time.Time
}

// Authenticate verifies a raw session token as presented by a client. An
// optional "Bearer " prefix is accepted.
func Authenticate(jwt *helpers.JWTManager, raw string) (*Identity, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 6 && strings.EqualFold(raw[:6], "bearer") && (len(raw) == 6 || raw[6] == ' ') {
		raw = strings.TrimSpace(raw[6:])
	}
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims, err := jwt.ParseSessionToken(raw)
	if err != nil {
		return nil, err
	}
	id := &Identity{UserID: claims.UserID, Name: claims.Name, Email: claims.Email}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}
