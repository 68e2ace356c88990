package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/markrenzo/portfolio-backend/internal/cards"
	"github.com/markrenzo/portfolio-backend/internal/chat"
	"github.com/markrenzo/portfolio-backend/internal/models"
	"github.com/markrenzo/portfolio-backend/internal/render"
)

// ChatHandler управляет диалогом с ассистентом.
type ChatHandler struct {
	chat     *chat.Service
	resolver *cards.Resolver
}

// NewChatHandler создаёт новый хэндлер.
func NewChatHandler(chatSvc *chat.Service, resolver *cards.Resolver) *ChatHandler {
	return &ChatHandler{chat: chatSvc, resolver: resolver}
}

type sendMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionID"`
}

// segmentView - сегмент ответа вместе с готовыми к показу карточками.
type segmentView struct {
	render.PlannedSegment
	Card  *cards.CardViewModel  `json:"card,omitempty"`
	Cards []cards.CardViewModel `json:"cards,omitempty"`
}

// SendMessage POST /api/chat
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "невалидное тело запроса"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = h.chat.NewSession()
	}

	reply, err := h.chat.Send(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "сообщение не может быть пустым"})
		case errors.Is(err, chat.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"error": "дождитесь ответа на предыдущее сообщение"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось отправить сообщение"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID": sessionID,
		"message":   reply,
		"segments":  h.renderSegments(reply),
	})
}

// GetTranscript GET /api/chat/:sessionID
func (h *ChatHandler) GetTranscript(c *gin.Context) {
	sessionID := c.Param("sessionID")

	messages, err := h.chat.Transcript(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "сессия не найдена"})
		return
	}

	type renderedMessage struct {
		models.Message
		Segments []segmentView `json:"segments"`
	}

	rendered := make([]renderedMessage, 0, len(messages))
	for _, m := range messages {
		rendered = append(rendered, renderedMessage{
			Message:  m,
			Segments: h.renderSegments(m),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID": sessionID,
		"messages":  rendered,
	})
}

type clearRequest struct {
	SessionID string `json:"sessionID"`
}

// ClearSession POST /api/chat/clear
func (h *ChatHandler) ClearSession(c *gin.Context) {
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "поле sessionID обязательно"})
		return
	}

	newID, err := h.chat.Clear(req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"error": "дождитесь ответа на предыдущее сообщение"})
		case errors.Is(err, chat.ErrSessionMissing):
			c.JSON(http.StatusNotFound, gin.H{"error": "сессия не найдена"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось очистить сессию"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionID": newID})
}

// renderSegments строит план показа сообщения и прикрепляет карточки из кэша.
func (h *ChatHandler) renderSegments(m models.Message) []segmentView {
	return renderMessageSegments(h.resolver, m)
}

func renderMessageSegments(resolver *cards.Resolver, m models.Message) []segmentView {
	planned := render.Plan(m.Content, m.IsUser)
	views := make([]segmentView, 0, len(planned))

	for _, seg := range planned {
		view := segmentView{PlannedSegment: seg}
		switch seg.Kind {
		case render.KindCard:
			resolved := resolver.Resolve(seg.Identifier)
			view.Card = &resolved
		case render.KindCardGroup:
			for _, id := range seg.Identifiers {
				view.Cards = append(view.Cards, resolver.Resolve(id))
			}
		}
		views = append(views, view)
	}
	return views
}
