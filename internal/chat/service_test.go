package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// mockWebhook реализует Webhook для тестов.
type mockWebhook struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	block   chan struct{}
	started chan struct{}
}

func newMockWebhook(reply string) *mockWebhook {
	return &mockWebhook{reply: reply}
}

func (m *mockWebhook) Send(ctx context.Context, message, sessionID string) (string, error) {
	m.mu.Lock()
	m.calls++
	block := m.block
	started := m.started
	reply, err := m.reply, m.err
	m.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		<-block
	}
	return reply, err
}

func TestService_SendAppendsBothMessages(t *testing.T) {
	svc := NewService(newMockWebhook("Привет! <aboutmecard>"))
	id := svc.NewSession()

	reply, err := svc.Send(context.Background(), id, "расскажи о себе")
	if err != nil {
		t.Fatalf("Send не должен падать: %v", err)
	}
	if reply.IsUser {
		t.Fatalf("ответ должен быть от ассистента")
	}
	if reply.Content != "Привет! <aboutmecard>" {
		t.Fatalf("неожиданный ответ: %q", reply.Content)
	}

	transcript, err := svc.Transcript(id)
	if err != nil {
		t.Fatalf("Transcript не должен падать: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("ожидали 2 сообщения, получили %d", len(transcript))
	}
	if !transcript[0].IsUser || transcript[1].IsUser {
		t.Fatalf("неожиданный порядок сообщений: %+v", transcript)
	}
	if transcript[0].ID >= transcript[1].ID {
		t.Fatalf("ID сообщений должны расти: %d, %d", transcript[0].ID, transcript[1].ID)
	}
}

func TestService_EmptyMessageRejected(t *testing.T) {
	svc := NewService(newMockWebhook("ответ"))
	id := svc.NewSession()

	if _, err := svc.Send(context.Background(), id, "   \n\t "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("ожидали ErrEmptyMessage, получили %v", err)
	}

	transcript, _ := svc.Transcript(id)
	if len(transcript) != 0 {
		t.Fatalf("пустое сообщение не должно попадать в транскрипт")
	}
}

func TestService_BusyWhileAwaitingReply(t *testing.T) {
	hook := newMockWebhook("ответ")
	hook.block = make(chan struct{})
	hook.started = make(chan struct{})

	svc := NewService(hook)
	id := svc.NewSession()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Send(context.Background(), id, "первое")
	}()

	<-hook.started
	if !svc.Awaiting(id) {
		t.Fatalf("сессия должна ждать ответ")
	}

	if _, err := svc.Send(context.Background(), id, "второе"); !errors.Is(err, ErrBusy) {
		t.Fatalf("ожидали ErrBusy, получили %v", err)
	}

	close(hook.block)
	<-done

	if svc.Awaiting(id) {
		t.Fatalf("после ответа сессия должна вернуться в Idle")
	}
}

func TestService_WebhookFailureGivesFallback(t *testing.T) {
	hook := newMockWebhook("")
	hook.err = errors.New("webhook: status 500")

	svc := NewService(hook)
	id := svc.NewSession()

	reply, err := svc.Send(context.Background(), id, "привет")
	if err != nil {
		t.Fatalf("отказ вебхука не должен быть ошибкой Send: %v", err)
	}
	if reply.Content != FallbackReply {
		t.Fatalf("ожидали fallback, получили %q", reply.Content)
	}

	transcript, _ := svc.Transcript(id)
	if len(transcript) != 2 {
		t.Fatalf("ожидали ровно 2 сообщения, получили %d", len(transcript))
	}
	if svc.Awaiting(id) {
		t.Fatalf("после fallback сессия должна быть в Idle")
	}
}

func TestService_UnknownSessionAutoCreated(t *testing.T) {
	svc := NewService(newMockWebhook("ответ"))

	if _, err := svc.Send(context.Background(), "session_from_client", "привет"); err != nil {
		t.Fatalf("незнакомый токен должен создавать сессию: %v", err)
	}

	transcript, err := svc.Transcript("session_from_client")
	if err != nil {
		t.Fatalf("сессия должна существовать: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("ожидали 2 сообщения, получили %d", len(transcript))
	}
}

func TestService_ClearIssuesNewToken(t *testing.T) {
	svc := NewService(newMockWebhook("ответ"))
	id := svc.NewSession()
	_, _ = svc.Send(context.Background(), id, "привет")

	newID, err := svc.Clear(id)
	if err != nil {
		t.Fatalf("Clear не должен падать: %v", err)
	}
	if newID == id {
		t.Fatalf("Clear должен выдавать новый токен")
	}

	if _, err := svc.Transcript(id); !errors.Is(err, ErrSessionMissing) {
		t.Fatalf("старая сессия должна исчезнуть, получили %v", err)
	}
	transcript, err := svc.Transcript(newID)
	if err != nil {
		t.Fatalf("новая сессия должна существовать: %v", err)
	}
	if len(transcript) != 0 {
		t.Fatalf("новая сессия должна быть пустой")
	}
}

func TestService_ClearRejectedWhileAwaiting(t *testing.T) {
	hook := newMockWebhook("ответ")
	hook.block = make(chan struct{})
	hook.started = make(chan struct{})

	svc := NewService(hook)
	id := svc.NewSession()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Send(context.Background(), id, "первое")
	}()

	<-hook.started
	if _, err := svc.Clear(id); !errors.Is(err, ErrBusy) {
		t.Fatalf("Clear во время ожидания должен отклоняться, получили %v", err)
	}

	close(hook.block)
	<-done
}
