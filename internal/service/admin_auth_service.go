package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthService exchanges the studio's admin password for a session token.
type AdminAuthService interface {
	Login(password string) (string, error)
}

type adminAuthService struct {
	passwordHash string
	jwtSecret    string
}

func NewAdminAuthService(passwordHash, jwtSecret string) AdminAuthService {
	return &adminAuthService{passwordHash: passwordHash, jwtSecret: jwtSecret}
}

func (s *adminAuthService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
