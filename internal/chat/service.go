package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/markrenzo/portfolio-backend/internal/logger"
	"github.com/markrenzo/portfolio-backend/internal/models"
)

// FallbackReply подставляется вместо ответа ассистента при отказе вебхука.
const FallbackReply = "Sorry, something went wrong. Please try again later."

// Ошибки сессии.
var (
	ErrEmptyMessage   = errors.New("chat: empty message")
	ErrBusy           = errors.New("chat: reply already in flight")
	ErrSessionMissing = errors.New("chat: session not found")
)

// Webhook - внешний AI-собеседник.
type Webhook interface {
	Send(ctx context.Context, message, sessionID string) (string, error)
}

// state - состояние сессии.
type state int

const (
	stateIdle state = iota
	stateAwaitingReply
)

// session хранит транскрипт одной беседы. Транскрипт только растёт;
// сообщения упорядочены по вставке.
type session struct {
	id       string
	st       state
	nextID   int64
	messages []models.Message
}

func (s *session) append(content string, isUser bool) models.Message {
	s.nextID++
	msg := models.Message{
		ID:        s.nextID,
		Content:   content,
		IsUser:    isUser,
		Timestamp: time.Now(),
	}
	s.messages = append(s.messages, msg)
	return msg
}

// Service управляет сессиями бесед в памяти процесса.
// Постоянного хранилища у транскриптов нет.
type Service struct {
	webhook Webhook

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService создаёт сервис бесед.
func NewService(webhook Webhook) *Service {
	return &Service{
		webhook:  webhook,
		sessions: make(map[string]*session),
	}
}

// NewSession выдаёт новый токен сессии.
func (s *Service) NewSession() string {
	id := newSessionToken()
	s.mu.Lock()
	s.sessions[id] = &session{id: id}
	s.mu.Unlock()
	return id
}

func newSessionToken() string {
	return "session_" + uuid.NewString()
}

// Send принимает текст пользователя, пересылает его вебхуку и добавляет ответ
// ассистента в транскрипт. Пока ответ в пути, повторный Send той же сессии
// отклоняется (ErrBusy): на сессию допускается максимум один запрос в полёте.
// Отказ вебхука не является ошибкой Send - в транскрипт попадает фиксированный
// fallback-ответ, сессия возвращается в Idle.
func (s *Service) Send(ctx context.Context, sessionID, content string) (models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		// Незнакомый токен - создаём сессию с ним: транскрипт живёт на
		// клиенте, сервер лишь сторожит состояние "один запрос в полёте".
		sess = &session{id: sessionID}
		s.sessions[sessionID] = sess
	}
	if sess.st == stateAwaitingReply {
		s.mu.Unlock()
		return models.Message{}, ErrBusy
	}
	sess.append(content, true)
	sess.st = stateAwaitingReply
	s.mu.Unlock()

	reply, err := s.webhook.Send(ctx, content, sessionID)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithField("session_id", sessionID).Errorf("chat: ошибка вебхука: %v", err)
		}
		reply = FallbackReply
	}

	s.mu.Lock()
	msg := sess.append(reply, false)
	sess.st = stateIdle
	s.mu.Unlock()
	return msg, nil
}

// Transcript возвращает копию транскрипта сессии.
func (s *Service) Transcript(sessionID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionMissing
	}
	out := make([]models.Message, len(sess.messages))
	copy(out, sess.messages)
	return out, nil
}

// Clear сбрасывает беседу: старый транскрипт удаляется, выдаётся новый токен.
// Доступно только из Idle - пока ответ в пути, сброс отклоняется.
func (s *Service) Clear(sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sessionID]; ok {
		if sess.st == stateAwaitingReply {
			return "", ErrBusy
		}
		delete(s.sessions, sessionID)
	}

	id := newSessionToken()
	s.sessions[id] = &session{id: id}
	return id, nil
}

// Awaiting сообщает, ждёт ли сессия ответ вебхука.
func (s *Service) Awaiting(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	return ok && sess.st == stateAwaitingReply
}
