package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminToken хранит выпущенный токен администратора.
type AdminToken struct {
	Token     string        `json:"token"`
	ExpiresIn time.Duration `json:"expires_in"`
}

// AdminTokenManager отвечает за выпуск и проверку JWT администратора.
type AdminTokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewAdminTokenManager создаёт менеджер токенов.
func NewAdminTokenManager(secret string, ttl time.Duration) *AdminTokenManager {
	return &AdminTokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate выпускает новый токен администратора.
func (m *AdminTokenManager) Generate() (*AdminToken, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, time.Time{}, err
	}

	return &AdminToken{
		Token:     signed,
		ExpiresIn: m.ttl,
	}, exp, nil
}

// Parse проверяет токен администратора и возвращает клеймы.
func (m *AdminTokenManager) Parse(token string) (*jwt.RegisteredClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	if claims.Subject != "admin" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
