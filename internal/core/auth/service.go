package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/baseplate/cms/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDisabled           = errors.New("authentication is not configured")
)

type Service struct {
	config *config.JWTConfig
	now    func() time.Time
}

func NewService(cfg *config.JWTConfig) *Service {
	return &Service{config: cfg, now: time.Now}
}

type JWTClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Enabled reports whether requests must carry credentials. Without a secret
// the API is open.
func (s *Service) Enabled() bool {
	return s.config.Secret != ""
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if !s.Enabled() || s.config.AdminPasswordHash == "" {
		return nil, ErrDisabled
	}
	if req.Username != "" && req.Username != AdminUsername {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.config.ExpirationDuration())
	token, err := s.generateToken(AdminUsername, expiresAt)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *Service) generateToken(username string, expiresAt time.Time) (string, error) {
	claims := JWTClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrUnauthorized
}

// ValidateAPIKey compares the key's hash with the configured one.
func (s *Service) ValidateAPIKey(key string) error {
	if s.config.APIKeyHash == "" || key == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(HashAPIKey(key)), []byte(s.config.APIKeyHash)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// HashPassword returns the bcrypt hash to configure as the admin password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func HashAPIKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

func GenerateAPIKey() (*APIKey, error) {
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return nil, err
	}
	key := "cms_" + hex.EncodeToString(keyBytes)
	return &APIKey{Key: key, Hash: HashAPIKey(key)}, nil
}
