package service

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T, adminKey string) *AdminAuthService {
	t.Helper()
	tokens := NewAdminTokenManager("test-secret-for-admin-tokens", time.Hour)
	return NewAdminAuthService(adminKey, tokens)
}

func TestAdminAuth_PlainKey(t *testing.T) {
	auth := newTestAuth(t, "super-secret-admin-key")

	if !auth.VerifyKey("super-secret-admin-key") {
		t.Fatalf("верный ключ должен проходить")
	}
	if auth.VerifyKey("wrong-key") {
		t.Fatalf("неверный ключ не должен проходить")
	}
	if auth.VerifyKey("") {
		t.Fatalf("пустой ключ не должен проходить")
	}
}

func TestAdminAuth_BcryptKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret-admin-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("не удалось сгенерировать хеш: %v", err)
	}

	auth := newTestAuth(t, string(hash))
	if !auth.VerifyKey("super-secret-admin-key") {
		t.Fatalf("верный ключ должен проходить через bcrypt")
	}
	if auth.VerifyKey("wrong-key") {
		t.Fatalf("неверный ключ не должен проходить через bcrypt")
	}
}

func TestAdminAuth_LoginIssuesValidToken(t *testing.T) {
	auth := newTestAuth(t, "super-secret-admin-key")

	token, expiresAt, err := auth.Login("super-secret-admin-key")
	if err != nil {
		t.Fatalf("Login не должен падать: %v", err)
	}
	if token.Token == "" {
		t.Fatalf("токен не должен быть пустым")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("срок жизни токена должен быть в будущем")
	}

	if !auth.VerifyToken(token.Token) {
		t.Fatalf("выданный токен должен проходить проверку")
	}
}

func TestAdminAuth_LoginRejectsWrongKey(t *testing.T) {
	auth := newTestAuth(t, "super-secret-admin-key")

	if _, _, err := auth.Login("wrong"); err == nil {
		t.Fatalf("Login с неверным ключом должен падать")
	}
}

func TestAdminAuth_RejectsForeignToken(t *testing.T) {
	auth := newTestAuth(t, "super-secret-admin-key")

	foreign := NewAdminTokenManager("another-secret-entirely", time.Hour)
	token, _, err := foreign.Generate()
	if err != nil {
		t.Fatalf("не удалось выпустить токен: %v", err)
	}

	if auth.VerifyToken(token.Token) {
		t.Fatalf("токен с чужим секретом не должен проходить")
	}
}

func TestAdminTokenManager_ExpiredToken(t *testing.T) {
	tokens := NewAdminTokenManager("test-secret-for-admin-tokens", -time.Minute)
	token, _, err := tokens.Generate()
	if err != nil {
		t.Fatalf("не удалось выпустить токен: %v", err)
	}

	if _, err := tokens.Parse(token.Token); err == nil {
		t.Fatalf("просроченный токен должен отклоняться")
	}
}
