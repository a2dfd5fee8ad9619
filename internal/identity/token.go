package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultIssuer = "flappyseal"

var (
	// ErrNoSecret is returned when a signing secret is missing.
	ErrNoSecret = errors.New("identity: signing secret is empty")
	// ErrInvalidToken wraps every token parse or verification failure.
	ErrInvalidToken = errors.New("identity: invalid token")
)

// Claims are the JWT claims carried by a player token.
type Claims struct {
	Name          string `json:"name"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// Issuer mints HS256 player tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer. A ttl of zero issues tokens without expiry.
func NewIssuer(secret []byte, ttl time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for who.
func (i *Issuer) Issue(who Identity) (string, error) {
	if who.ID == "" {
		return "", errors.New("identity: cannot issue a token without a subject")
	}
	now := i.now()
	claims := Claims{
		Name:          who.DisplayName,
		EmailVerified: who.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   defaultIssuer,
			Subject:  who.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("identity: cannot sign token: %w", err)
	}
	return signed, nil
}

// Verifier checks HS256 player tokens.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a verifier for tokens signed with secret.
func NewVerifier(secret []byte) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &Verifier{secret: secret, now: time.Now}, nil
}

// Verify parses a token and returns the identity it carries.
func (v *Verifier) Verify(raw string) (Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(defaultIssuer),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	name := claims.Name
	if name == "" {
		name = claims.Subject
	}
	return Identity{
		ID:            claims.Subject,
		DisplayName:   name,
		EmailVerified: claims.EmailVerified,
	}, nil
}

// TokenProvider is a Provider backed by a single bearer token. The token is
// re-verified on every call, so an expired token signs the player out.
type TokenProvider struct {
	verifier *Verifier
	token    string
}

// NewTokenProvider creates a provider for token. An empty token yields a
// provider with nobody signed in.
func NewTokenProvider(v *Verifier, token string) *TokenProvider {
	return &TokenProvider{verifier: v, token: token}
}

// CurrentUser returns the token's identity, or nobody if it does not verify.
func (p *TokenProvider) CurrentUser() (Identity, bool) {
	if p.token == "" || p.verifier == nil {
		return Identity{}, false
	}
	who, err := p.verifier.Verify(p.token)
	if err != nil {
		return Identity{}, false
	}
	return who, true
}
