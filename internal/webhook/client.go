package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client отправляет сообщения посетителя во внешний чат-вебхук.
// Вебхук сам хранит память беседы по sessionID; клиент токен не интерпретирует.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient создаёт клиента вебхука.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type request struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionID"`
}

type response struct {
	Output string `json:"output"`
}

// Send передаёт текст пользователя и возвращает сырой ответ ассистента.
// Любой статус кроме 2xx считается ошибкой транспорта.
func (c *Client) Send(ctx context.Context, message, sessionID string) (string, error) {
	if c.url == "" {
		return "", fmt.Errorf("webhook: URL не задан")
	}

	body, err := json.Marshal(request{Message: message, SessionID: sessionID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("webhook: запрос не удался: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("webhook: код ответа %d", resp.StatusCode)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("webhook: невалидный JSON в ответе: %w", err)
	}

	if parsed.Output == "" {
		return "Sorry, I didn't get a valid response.", nil
	}
	return parsed.Output, nil
}
