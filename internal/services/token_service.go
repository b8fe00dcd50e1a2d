package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kavya410004/cultivating-connections/internal/models"
	"github.com/kavya410004/cultivating-connections/internal/repository"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type TokenClaims struct {
	OwnerID uint   `json:"owner_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	tokenRepo *repository.TokenRepository
	jwtSecret string
}

func NewTokenService(tokenRepo *repository.TokenRepository, jwtSecret string) *TokenService {
	return &TokenService{
		tokenRepo: tokenRepo,
		jwtSecret: jwtSecret,
	}
}

// Generate signs a new API token for a principal and records it so it can be
// revoked before expiry.
func (s *TokenService) Generate(ownerID uint, role, label string, expiresIn time.Duration) (string, error) {
	claims := TokenClaims{
		OwnerID: ownerID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "cultivating-connections",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	apiToken := &models.APIToken{
		OwnerID:   ownerID,
		Role:      role,
		Token:     tokenString,
		Label:     label,
		ExpiresAt: time.Now().Add(expiresIn),
	}
	if err := s.tokenRepo.Create(apiToken); err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate checks the signature, then requires the token to still be on
// record and unexpired, so revoked tokens stop working immediately.
func (s *TokenService) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	dbToken, err := s.tokenRepo.FindByToken(tokenString)
	if err != nil {
		return nil, err
	}
	if dbToken == nil {
		return nil, ErrInvalidToken
	}

	if dbToken.ExpiresAt.Before(time.Now()) {
		return nil, ErrExpiredToken
	}

	return claims, nil
}

func (s *TokenService) List(ownerID uint, role string) ([]models.APIToken, error) {
	return s.tokenRepo.FindByOwner(ownerID, role)
}

func (s *TokenService) Delete(tokenID, ownerID uint, role string) error {
	return s.tokenRepo.Delete(tokenID, ownerID, role)
}
