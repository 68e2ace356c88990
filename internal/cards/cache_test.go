package cards

import (
	"context"
	"errors"
	"testing"

	"github.com/markrenzo/portfolio-backend/internal/models"
	"github.com/markrenzo/portfolio-backend/internal/repository"
)

// mockFetcher реализует Fetcher для тестов.
type mockFetcher struct {
	catalog    models.IdentifierCatalog
	items      map[string]*models.PortfolioItem
	catalogErr error
	itemErrs   map[string]error
	calls      int
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		catalog: models.IdentifierCatalog{
			"projects": {{Identifier: "project_chatbot", AIDescription: "chatbot project"}},
			"tools":    {{Identifier: "tool_react", AIDescription: "react"}},
		},
		items: map[string]*models.PortfolioItem{
			"project_chatbot": {Type: models.TypeProject, Data: map[string]string{"title": "Chatbot"}},
			"tool_react":      {Type: models.TypeTool, Data: map[string]string{"name": "React"}},
		},
		itemErrs: make(map[string]error),
	}
}

func (m *mockFetcher) FetchPortfolioItem(ctx context.Context, identifier string) (*models.PortfolioItem, error) {
	if err, ok := m.itemErrs[identifier]; ok {
		return nil, err
	}
	if item, ok := m.items[identifier]; ok {
		return item, nil
	}
	return nil, repository.ErrItemNotFound
}

func (m *mockFetcher) FetchAllIdentifiers(ctx context.Context) (models.IdentifierCatalog, error) {
	m.calls++
	if m.catalogErr != nil {
		return nil, m.catalogErr
	}
	return m.catalog, nil
}

func TestCache_Preload(t *testing.T) {
	fetcher := newMockFetcher()
	cache := NewCache(fetcher)

	if err := cache.Preload(context.Background()); err != nil {
		t.Fatalf("предзагрузка не должна падать: %v", err)
	}

	// Два элемента из каталога плюс aboutmecard.
	if cache.Len() != 3 {
		t.Fatalf("ожидали 3 элемента в кэше, получили %d", cache.Len())
	}

	item, ok := cache.Get("project_chatbot")
	if !ok {
		t.Fatalf("project_chatbot должен быть в кэше")
	}
	if item.Type != models.TypeProject {
		t.Fatalf("неожиданный тип: %s", item.Type)
	}
}

func TestCache_PreloadAlwaysContainsAbout(t *testing.T) {
	fetcher := newMockFetcher()
	cache := NewCache(fetcher)

	if err := cache.Preload(context.Background()); err != nil {
		t.Fatalf("предзагрузка не должна падать: %v", err)
	}

	item, ok := cache.Get(models.AboutIdentifier)
	if !ok {
		t.Fatalf("aboutmecard должен быть в кэше всегда")
	}
	if item.Type != models.TypeAbout {
		t.Fatalf("неожиданный тип aboutmecard: %s", item.Type)
	}
}

func TestCache_ItemFailureIsSkipped(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.itemErrs["tool_react"] = errors.New("db down")
	cache := NewCache(fetcher)

	if err := cache.Preload(context.Background()); err != nil {
		t.Fatalf("отказ одного элемента не должен валить предзагрузку: %v", err)
	}

	if _, ok := cache.Get("tool_react"); ok {
		t.Fatalf("упавший элемент не должен попасть в кэш")
	}
	if _, ok := cache.Get("project_chatbot"); !ok {
		t.Fatalf("остальные элементы должны загрузиться")
	}
}

func TestCache_CatalogFailureMarksError(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.catalogErr = errors.New("connection refused")
	cache := NewCache(fetcher)

	if err := cache.Preload(context.Background()); err == nil {
		t.Fatalf("ожидали ошибку предзагрузки")
	}
	if cache.LoadErr() == nil {
		t.Fatalf("кэш должен помнить ошибку каталога")
	}
	if cache.Len() != 0 {
		t.Fatalf("кэш должен остаться пустым, получили %d элементов", cache.Len())
	}
}

func TestCache_RetryAfterCatalogFailure(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.catalogErr = errors.New("connection refused")
	cache := NewCache(fetcher)

	_ = cache.Preload(context.Background())

	fetcher.catalogErr = nil
	if err := cache.Retry(context.Background()); err != nil {
		t.Fatalf("повторная предзагрузка не должна падать: %v", err)
	}
	if cache.LoadErr() != nil {
		t.Fatalf("ошибка должна сброситься после успешного Retry")
	}
	if cache.Len() != 3 {
		t.Fatalf("ожидали 3 элемента после Retry, получили %d", cache.Len())
	}
}
