package cards

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/markrenzo/portfolio-backend/internal/logger"
	"github.com/markrenzo/portfolio-backend/internal/models"
)

// preloadConcurrency ограничивает число параллельных запросов предзагрузки.
const preloadConcurrency = 8

// Fetcher - источник данных портфолио для кэша.
type Fetcher interface {
	FetchPortfolioItem(ctx context.Context, identifier string) (*models.PortfolioItem, error)
	FetchAllIdentifiers(ctx context.Context) (models.IdentifierCatalog, error)
}

// Cache - кэш identifier -> PortfolioItem, заполняемый один раз при старте
// и далее только читаемый. Админка меняет базу напрямую; после правок кэш
// обновляется повторным вызовом Preload.
type Cache struct {
	fetcher Fetcher

	mu      sync.RWMutex
	items   map[string]models.PortfolioItem
	loading bool
	loadErr error
}

// NewCache создаёт пустой кэш.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		items:   make(map[string]models.PortfolioItem),
	}
}

// Preload выполняет массовую предзагрузку: список идентификаторов, затем
// параллельная выборка каждого элемента. Отказ отдельного элемента не валит
// загрузку - идентификатор просто останется без записи в кэше. Отказ самой
// выборки каталога помечает кэш ошибочным до следующего Preload.
func (c *Cache) Preload(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.loadErr = nil
	c.mu.Unlock()

	catalog, err := c.fetcher.FetchAllIdentifiers(ctx)
	if err != nil {
		err = fmt.Errorf("cards: не удалось получить каталог идентификаторов: %w", err)
		c.mu.Lock()
		c.loading = false
		c.loadErr = err
		c.mu.Unlock()
		return err
	}

	fresh := make(map[string]models.PortfolioItem)
	var freshMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)
	for _, id := range catalog.Identifiers() {
		id := id
		g.Go(func() error {
			item, err := c.fetcher.FetchPortfolioItem(gctx, id)
			if err != nil {
				// Частичный отказ изолирован: логируем и пропускаем.
				if logger.Log != nil {
					logger.Log.WithField("identifier", id).Warnf("cards: предзагрузка не удалась: %v", err)
				}
				return nil
			}
			freshMu.Lock()
			fresh[id] = *item
			freshMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// aboutmecard не привязан к таблице и кладётся в кэш вручную.
	fresh[models.AboutIdentifier] = models.PortfolioItem{
		Type: models.TypeAbout,
		Data: models.AboutMe(),
	}

	c.mu.Lock()
	c.items = fresh
	c.loading = false
	c.mu.Unlock()
	return nil
}

// Retry повторяет предзагрузку после ошибки каталога.
func (c *Cache) Retry(ctx context.Context) error {
	return c.Preload(ctx)
}

// ErrCacheNotLoaded возвращается из Get, пока кэш пуст из-за ошибки каталога.
var ErrCacheNotLoaded = errors.New("cards: cache not loaded")

// Get возвращает элемент кэша по идентификатору.
func (c *Cache) Get(identifier string) (models.PortfolioItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[identifier]
	return item, ok
}

// Loading сообщает, идёт ли предзагрузка прямо сейчас.
func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// LoadErr возвращает ошибку последней предзагрузки каталога.
func (c *Cache) LoadErr() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

// Len возвращает размер кэша.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
