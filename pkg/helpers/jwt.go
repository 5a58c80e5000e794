package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	PurposeSession      = "session"
	PurposeConfirmation = "email_confirmation"
)

// Claims is the payload of every token. Session tokens carry Name and Email;
// confirmation tokens only the id. Nothing secret belongs here, the payload
// is only signed.
type Claims struct {
	UserID  string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens for a single purpose.
// A token issued for one purpose never verifies under another issuer, both
// because the secrets differ and because the purpose claim is checked.
type TokenIssuer struct {
	secret  []byte
	ttl     time.Duration
	purpose string
	now     func() time.Time
}

// NewTokenIssuer returns an issuer. ttl <= 0 issues tokens without exp.
func NewTokenIssuer(secret string, ttl time.Duration, purpose string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, purpose: purpose, now: time.Now}
}

// Issue signs c, stamping purpose, iat and (when a ttl is set) exp.
func (i *TokenIssuer) Issue(c Claims) (string, time.Time, error) {
	now := i.now()
	c.Purpose = i.purpose
	c.IssuedAt = jwt.NewNumericDate(now)
	var exp time.Time
	if i.ttl > 0 {
		exp = now.Add(i.ttl)
		c.ExpiresAt = jwt.NewNumericDate(exp)
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &c)
	s, err := t.SignedString(i.secret)
	return s, exp, err
}

// Verify checks signature, expiry and purpose.
func (i *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tkn.Valid || claims.Purpose != i.purpose || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// JWTManager holds one issuer per token purpose.
type JWTManager struct {
	Session      *TokenIssuer
	Confirmation *TokenIssuer
}

func NewJWTManager(sessionSecret, emailSecret string, sessionTTL, emailTTL time.Duration) *JWTManager {
	return &JWTManager{
		Session:      NewTokenIssuer(sessionSecret, sessionTTL, PurposeSession),
		Confirmation: NewTokenIssuer(emailSecret, emailTTL, PurposeConfirmation),
	}
}

func (m *JWTManager) GenerateSessionToken(userID, name, email string) (string, time.Time, error) {
	return m.Session.Issue(Claims{UserID: userID, Name: name, Email: email})
}

func (m *JWTManager) GenerateConfirmationToken(userID string) (string, time.Time, error) {
	return m.Confirmation.Issue(Claims{UserID: userID})
}

func (m *JWTManager) ParseSessionToken(tokenStr string) (*Claims, error) {
	return m.Session.Verify(tokenStr)
}

func (m *JWTManager) ParseConfirmationToken(tokenStr string) (*Claims, error) {
	return m.Confirmation.Verify(tokenStr)
}
