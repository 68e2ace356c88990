package service

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidAdminKey возвращается при неверном админском ключе.
var ErrInvalidAdminKey = errors.New("admin: неверный ключ")

// AdminAuthService проверяет админский ключ и выпускает токены.
type AdminAuthService struct {
	adminKey string
	tokens   *AdminTokenManager
}

// NewAdminAuthService создаёт сервис аутентификации администратора.
func NewAdminAuthService(adminKey string, tokens *AdminTokenManager) *AdminAuthService {
	return &AdminAuthService{
		adminKey: adminKey,
		tokens:   tokens,
	}
}

// Login проверяет ключ и выпускает JWT администратора.
func (s *AdminAuthService) Login(key string) (*AdminToken, time.Time, error) {
	if !s.VerifyKey(key) {
		return nil, time.Time{}, ErrInvalidAdminKey
	}
	return s.tokens.Generate()
}

// VerifyKey сравнивает предъявленный ключ с настроенным.
// Ключ в конфигурации может быть задан как bcrypt хеш или открытым текстом.
func (s *AdminAuthService) VerifyKey(key string) bool {
	if key == "" || s.adminKey == "" {
		return false
	}

	if strings.HasPrefix(s.adminKey, "$2a$") || strings.HasPrefix(s.adminKey, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(s.adminKey), []byte(key)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(s.adminKey), []byte(key)) == 1
}

// VerifyToken проверяет JWT администратора.
func (s *AdminAuthService) VerifyToken(token string) bool {
	_, err := s.tokens.Parse(token)
	return err == nil
}
