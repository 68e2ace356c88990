package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/markrenzo/portfolio-backend/internal/cards"
	"github.com/markrenzo/portfolio-backend/internal/chat"
	"github.com/markrenzo/portfolio-backend/internal/logger"
	"github.com/markrenzo/portfolio-backend/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений чата.
type WSHandler struct {
	hub      *ws.Hub
	chat     *chat.Service
	resolver *cards.Resolver
	origins  map[string]bool
	upgrader websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер.
func NewWSHandler(hub *ws.Hub, chatSvc *chat.Service, resolver *cards.Resolver, allowedOrigins []string) *WSHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	h := &WSHandler{
		hub:      hub,
		chat:     chatSvc,
		resolver: resolver,
		origins:  origins,
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || h.origins[origin]
		},
	}
	return h
}

// Handle обслуживает GET /api/ws?sessionID=...
// Без sessionID создаётся новая сессия, её токен приходит первым событием.
func (h *WSHandler) Handle(c *gin.Context) {
	sessionID := c.Query("sessionID")
	created := false
	if sessionID == "" {
		sessionID = h.chat.NewSession()
		created = true
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	client := ws.NewClient(conn, h.hub, sessionID, h.handleInbound)
	h.hub.Register(client)

	if created {
		_ = h.hub.BroadcastToSession(sessionID, "session", gin.H{"sessionID": sessionID})
	}

	client.Run(c.Request.Context())
}

type wsInbound struct {
	Message string `json:"message"`
}

// handleInbound обрабатывает входящий фрейм: отправляет сообщение ассистенту
// и рассылает ответ вместе с планом показа всем подключениям сессии.
func (h *WSHandler) handleInbound(ctx context.Context, sessionID string, payload []byte) {
	var in wsInbound
	if err := json.Unmarshal(payload, &in); err != nil {
		_ = h.hub.BroadcastToSession(sessionID, "error", gin.H{"error": "невалидное сообщение"})
		return
	}

	reply, err := h.chat.Send(ctx, sessionID, in.Message)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			_ = h.hub.BroadcastToSession(sessionID, "error", gin.H{"error": "сообщение не может быть пустым"})
		case errors.Is(err, chat.ErrBusy):
			_ = h.hub.BroadcastToSession(sessionID, "error", gin.H{"error": "дождитесь ответа на предыдущее сообщение"})
		default:
			if logger.Log != nil {
				logger.Log.Errorf("ws: отправка сообщения не удалась: %v", err)
			}
			_ = h.hub.BroadcastToSession(sessionID, "error", gin.H{"error": "не удалось отправить сообщение"})
		}
		return
	}

	_ = h.hub.BroadcastToSession(sessionID, "message", gin.H{
		"message":  reply,
		"segments": renderMessageSegments(h.resolver, reply),
	})
}
