package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login; the reason is not
// disclosed to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService authenticates the admin account and issues session tokens.
// There is a single administrative login; distributor records carry no
// credentials at all.
type AuthService interface {
	Login(username, password string) (string, error)
}

type authService struct {
	adminUsername string
	adminPassHash []byte
	jwtSecret     []byte
	tokenTTL      time.Duration
}

// NewAuthService hashes the configured admin password once at startup.
func NewAuthService(adminUsername, adminPassword, jwtSecret string, tokenTTL time.Duration) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &authService{
		adminUsername: adminUsername,
		adminPassHash: hash,
		jwtSecret:     []byte(jwtSecret),
		tokenTTL:      tokenTTL,
	}, nil
}

func (s *authService) Login(username, password string) (string, error) {
	if username != s.adminUsername {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.adminPassHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
