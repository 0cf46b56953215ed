package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("admin login is not configured")
)

const issuer = "storefront-service"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret       []byte
	passwordHash []byte
	ttl          time.Duration
	clock        func() time.Time
}

// NewAuthenticator checks passwords against a bcrypt hash and signs HS256
// session tokens. An empty hash disables login.
func NewAuthenticator(secret, passwordHash string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		secret:       []byte(secret),
		passwordHash: []byte(passwordHash),
		ttl:          ttl,
		clock:        time.Now,
	}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Login exchanges the staff password for a signed token.
func (a *Authenticator) Login(password string) (string, *Session, error) {
	if len(a.passwordHash) == 0 {
		return "", nil, ErrLoginDisabled
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	return a.Issue(uuid.New().String())
}

func (a *Authenticator) Issue(subject string) (string, *Session, error) {
	now := a.clock()
	s := &Session{
		Subject:   subject,
		Role:      RoleStaff,
		IssuedAt:  now.Truncate(time.Second),
		ExpiresAt: now.Add(a.ttl).Truncate(time.Second),
	}
	claims := &Claims{
		Role: s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.Subject,
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, s, nil
}

func (a *Authenticator) Verify(token string) (*Session, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.clock),
	)

	var claims Claims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleStaff {
		return nil, ErrInvalidToken
	}

	return &Session{
		Subject:   claims.Subject,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
