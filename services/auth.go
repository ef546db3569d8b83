package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/HSouheill/lostfound_backend/models"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

const staffRole = "staff"

// StaffClaims for staff JWT tokens
type StaffClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// AuthService issues and checks staff tokens. Staff routes are open when
// no JWT secret is configured.
type AuthService struct {
	secret       []byte
	username     string
	passwordHash []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		secret:       []byte(cfg.JWTSecret),
		username:     cfg.StaffUsername,
		passwordHash: []byte(cfg.StaffPasswordHash),
		ttl:          cfg.TokenTTL,
		now:          time.Now,
	}
}

// Enabled reports whether staff routes require a token
func (s *AuthService) Enabled() bool {
	return len(s.secret) > 0
}

// Login checks the staff credentials and returns a signed token
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if !s.Enabled() || len(s.passwordHash) == 0 {
		return nil, newError(ErrUnavailable, "Staff authentication is not configured")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		return nil, newError(ErrUnauthorized, "Invalid username or password")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &StaffClaims{
		Username: req.Username,
		Role:     staffRole,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
			IssuedAt:  now.Unix(),
			Subject:   req.Username,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt.UTC()}, nil
}

// ParseToken validates a signed staff token and returns its claims
func (s *AuthService) ParseToken(raw string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Role != staffRole {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
