package services

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/robinhio12/rockbrakel/utils"
)

const adminTokenTTL = 24 * time.Hour

// AuthService issues admin tokens. There is a single organizer account,
// authenticated with a bcrypt password hash from the configuration.
type AuthService interface {
	Login(password string) (string, error)
}

type authService struct {
	passwordHash string
	jwtSecret    []byte
}

func NewAuthService(passwordHash string, jwtSecret []byte) AuthService {
	return &authService{
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
	}
}

func (s *authService) Login(password string) (string, error) {
	if !utils.CheckPasswordHash(password, s.passwordHash) {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(adminTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
