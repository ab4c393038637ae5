package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipes-service/internal/types"
)

const tokenIssuer = "recipes-service"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService checks the single configured account and issues bearer tokens for it.
type AuthService struct {
	username     string
	passwordHash []byte
	jwtSecret    []byte
	expiry       time.Duration
	now          func() time.Time
}

// NewAuthService hashes password once so requests are checked against the hash only.
func NewAuthService(username, password, jwtSecret string, expiry time.Duration) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &AuthService{
		username:     username,
		passwordHash: hash,
		jwtSecret:    []byte(jwtSecret),
		expiry:       expiry,
		now:          time.Now,
	}, nil
}

// Authenticate checks a username and password pair.
func (s *AuthService) Authenticate(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login authenticates and returns a signed token.
func (s *AuthService) Login(username, password string) (*types.TokenResponse, error) {
	if err := s.Authenticate(username, password); err != nil {
		return nil, err
	}
	return s.GenerateToken(username)
}

// GenerateToken signs an HS256 token for username.
func (s *AuthService) GenerateToken(username string) (*types.TokenResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.expiry)

	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &types.TokenResponse{Token: signed, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses and verifies a token issued by GenerateToken.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Username != s.username {
		return nil, fmt.Errorf("%w: unknown subject", ErrInvalidToken)
	}
	return claims, nil
}
