package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markrenzo/portfolio-backend/internal/cards"
	"github.com/markrenzo/portfolio-backend/internal/chat"
	"github.com/markrenzo/portfolio-backend/internal/models"
	"github.com/markrenzo/portfolio-backend/internal/repository"
)

// stubWebhook отвечает заранее заданным текстом.
type stubWebhook struct {
	reply string
	err   error
}

func (s *stubWebhook) Send(ctx context.Context, message, sessionID string) (string, error) {
	return s.reply, s.err
}

// stubFetcher наполняет кэш карточек фиксированным набором.
type stubFetcher struct{}

func (stubFetcher) FetchPortfolioItem(ctx context.Context, identifier string) (*models.PortfolioItem, error) {
	if identifier == "project_chatbot" {
		return &models.PortfolioItem{Type: models.TypeProject, Data: map[string]string{"title": "Chatbot"}}, nil
	}
	return nil, repository.ErrItemNotFound
}

func (stubFetcher) FetchAllIdentifiers(ctx context.Context) (models.IdentifierCatalog, error) {
	return models.IdentifierCatalog{
		"projects": {{Identifier: "project_chatbot", AIDescription: "chatbot project"}},
	}, nil
}

func newTestResolver(t *testing.T) *cards.Resolver {
	t.Helper()
	cache := cards.NewCache(stubFetcher{})
	require.NoError(t, cache.Preload(context.Background()))
	return cards.NewResolver(cache)
}

func newChatRouter(t *testing.T, hook chat.Webhook) (*gin.Engine, *chat.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	chatSvc := chat.NewService(hook)
	handler := NewChatHandler(chatSvc, newTestResolver(t))

	r := gin.New()
	r.POST("/api/chat", handler.SendMessage)
	r.POST("/api/chat/clear", handler.ClearSession)
	r.GET("/api/chat/:sessionID", handler.GetTranscript)
	return r, chatSvc
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatHandler_SendMessage(t *testing.T) {
	r, _ := newChatRouter(t, &stubWebhook{reply: "Вот проект: <project_chatbot>"})

	w := postJSON(r, "/api/chat", gin.H{"message": "покажи проекты"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID string `json:"sessionID"`
		Message   struct {
			Content string `json:"content"`
			IsUser  bool   `json:"is_user"`
		} `json:"message"`
		Segments []struct {
			Kind       string `json:"kind"`
			Text       string `json:"text"`
			Identifier string `json:"identifier"`
			Card       *struct {
				State   string `json:"state"`
				Variant string `json:"variant"`
			} `json:"card"`
		} `json:"segments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.SessionID)
	assert.False(t, resp.Message.IsUser)
	require.Len(t, resp.Segments, 2)
	assert.Equal(t, "text", resp.Segments[0].Kind)
	assert.Equal(t, "card", resp.Segments[1].Kind)
	assert.Equal(t, "project_chatbot", resp.Segments[1].Identifier)
	require.NotNil(t, resp.Segments[1].Card)
	assert.Equal(t, "ready", resp.Segments[1].Card.State)
	assert.Equal(t, "project_card", resp.Segments[1].Card.Variant)
}

func TestChatHandler_EmptyMessage(t *testing.T) {
	r, _ := newChatRouter(t, &stubWebhook{reply: "ответ"})

	w := postJSON(r, "/api/chat", gin.H{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandler_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, _ := newChatRouter(t, &stubWebhook{reply: "ответ"})

	req, _ := http.NewRequest("POST", "/api/chat", bytes.NewReader([]byte("не json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandler_WebhookFailureGivesFallback(t *testing.T) {
	r, _ := newChatRouter(t, &stubWebhook{err: context.DeadlineExceeded})

	w := postJSON(r, "/api/chat", gin.H{"message": "привет"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, chat.FallbackReply, resp.Message.Content)
}

func TestChatHandler_Transcript(t *testing.T) {
	r, chatSvc := newChatRouter(t, &stubWebhook{reply: "ответ"})
	sessionID := chatSvc.NewSession()
	_, err := chatSvc.Send(context.Background(), sessionID, "привет")
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/chat/"+sessionID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Messages []json.RawMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Messages, 2)
}

func TestChatHandler_TranscriptUnknownSession(t *testing.T) {
	r, _ := newChatRouter(t, &stubWebhook{reply: "ответ"})

	req, _ := http.NewRequest("GET", "/api/chat/session_unknown", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatHandler_Clear(t *testing.T) {
	r, chatSvc := newChatRouter(t, &stubWebhook{reply: "ответ"})
	sessionID := chatSvc.NewSession()

	w := postJSON(r, "/api/chat/clear", gin.H{"sessionID": sessionID})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID string `json:"sessionID"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEqual(t, sessionID, resp.SessionID)
}

func TestChatHandler_ClearWithoutSessionID(t *testing.T) {
	r, _ := newChatRouter(t, &stubWebhook{reply: "ответ"})

	w := postJSON(r, "/api/chat/clear", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
