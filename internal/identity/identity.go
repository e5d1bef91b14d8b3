package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNotSignedIn  = errors.New("not signed in")
	ErrTokenExpired = errors.New("token expired")
)

// Provider wraps the externally issued bearer token. The identity
// service itself is an opaque collaborator; the client only reads the
// subject and expiry out of the token it was handed.
type Provider struct {
	token string
}

func New(token string) *Provider {
	return &Provider{token: strings.TrimSpace(token)}
}

// CurrentUserID returns the user id carried in the token's sub claim.
// The signature is not checked here: verification belongs to the
// backend, the client only needs to know who it is acting as.
func (p *Provider) CurrentUserID() (uuid.UUID, error) {
	claims, err := p.claims()
	if err != nil {
		return uuid.Nil, err
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, fmt.Errorf("token has no subject: %w", ErrNotSignedIn)
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id in token: %w", err)
	}
	return userID, nil
}

// IsSignedIn reports whether a parseable, unexpired token is present.
func (p *Provider) IsSignedIn() bool {
	_, err := p.claims()
	return err == nil
}

func (p *Provider) claims() (jwt.MapClaims, error) {
	if p.token == "" {
		return nil, ErrNotSignedIn
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(p.token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err == nil && exp != nil && exp.Before(time.Now()) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
