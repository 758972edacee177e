package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// TokenID identifies a session token issued by the session collaborator
type TokenID string

// Validate checks if the TokenID is non-empty
func (id TokenID) Validate() error {
	if id == "" {
		return goerr.New("token ID cannot be empty")
	}
	return nil
}

// String returns the string representation of the TokenID
func (id TokenID) String() string {
	return string(id)
}

// TokenSecret is the secret paired with a TokenID. It is compared on
// every request and never logged (masq redacts it).
type TokenSecret string

// Validate checks if the TokenSecret is non-empty
func (s TokenSecret) Validate() error {
	if s == "" {
		return goerr.New("token secret cannot be empty")
	}
	return nil
}

// String returns the string representation of the TokenSecret
func (s TokenSecret) String() string {
	return string(s)
}

// TokenValidityPeriod is how long an issued session token stays valid
const TokenValidityPeriod = 7 * 24 * time.Hour

// Token is an opaque session token for one user
type Token struct {
	ID        TokenID     `firestore:"id"`
	Secret    TokenSecret `firestore:"secret" masq:"secret"`
	Sub       string      `firestore:"sub"`
	Email     string      `firestore:"email"`
	Name      string      `firestore:"name"`
	ExpiresAt time.Time   `firestore:"expires_at"`
	CreatedAt time.Time   `firestore:"created_at"`
}

// NewToken issues a new token for the given user
func NewToken(sub, email, name string) *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        TokenID(uuid.Must(uuid.NewV7()).String()),
		Secret:    newTokenSecret(),
		Sub:       sub,
		Email:     email,
		Name:      name,
		ExpiresAt: now.Add(TokenValidityPeriod),
		CreatedAt: now,
	}
}

func newTokenSecret() TokenSecret {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("failed to read random source: " + err.Error())
	}
	return TokenSecret(hex.EncodeToString(buf))
}

// Validate checks the token fields
func (t *Token) Validate() error {
	if err := t.ID.Validate(); err != nil {
		return err
	}
	if err := t.Secret.Validate(); err != nil {
		return err
	}
	if t.Sub == "" {
		return goerr.New("token subject cannot be empty")
	}
	return nil
}

// IsExpired checks whether the token has passed its expiry
func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// NewAnonymousUser returns a token representing the anonymous user.
// It is used when authentication is not configured (no-auth mode).
func NewAnonymousUser() *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        TokenID("anonymous"),
		Secret:    TokenSecret("anonymous"),
		Sub:       "anonymous",
		Name:      "Anonymous",
		ExpiresAt: now.Add(TokenValidityPeriod),
		CreatedAt: now,
	}
}
