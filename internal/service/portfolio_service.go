package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/markrenzo/portfolio-backend/internal/models"
	"github.com/markrenzo/portfolio-backend/internal/repository"
)

// ContentStore - читающая часть хранилища контента, нужная сервису.
type ContentStore interface {
	GetWorkExperience(ctx context.Context, identifier string) (*models.WorkExperience, error)
	GetProject(ctx context.Context, identifier string) (*models.Project, error)
	GetTool(ctx context.Context, identifier string) (*models.Tool, error)
	GetSkill(ctx context.Context, identifier string) (*models.Skill, error)
	GetGalleryItem(ctx context.Context, identifier string) (*models.GalleryItem, error)
	ListIdentifiers(ctx context.Context) (models.IdentifierCatalog, error)
}

// PortfolioService сопоставляет идентификаторы с данными контента.
type PortfolioService struct {
	store ContentStore
}

// NewPortfolioService создаёт сервис портфолио.
func NewPortfolioService(store ContentStore) *PortfolioService {
	return &PortfolioService{store: store}
}

// FetchPortfolioItem возвращает элемент портфолио по идентификатору.
// Таблица выбирается по префиксу; aboutmecard отдаётся без обращения к базе.
// Неизвестный префикс и отсутствующая строка равнозначны: ErrItemNotFound.
func (s *PortfolioService) FetchPortfolioItem(ctx context.Context, identifier string) (*models.PortfolioItem, error) {
	if identifier == models.AboutIdentifier {
		return &models.PortfolioItem{Type: models.TypeAbout, Data: models.AboutMe()}, nil
	}

	switch {
	case strings.HasPrefix(identifier, "work_"):
		item, err := s.store.GetWorkExperience(ctx, identifier)
		if err != nil {
			return nil, err
		}
		return &models.PortfolioItem{Type: models.TypeWorkExperience, Data: item}, nil

	case strings.HasPrefix(identifier, "project_"):
		item, err := s.store.GetProject(ctx, identifier)
		if err != nil {
			return nil, err
		}
		return &models.PortfolioItem{Type: models.TypeProject, Data: item}, nil

	case strings.HasPrefix(identifier, "tool_"):
		item, err := s.store.GetTool(ctx, identifier)
		if err != nil {
			return nil, err
		}
		return &models.PortfolioItem{Type: models.TypeTool, Data: item}, nil

	case strings.HasPrefix(identifier, "skill_"):
		item, err := s.store.GetSkill(ctx, identifier)
		if err != nil {
			return nil, err
		}
		return &models.PortfolioItem{Type: models.TypeSkill, Data: item}, nil

	case strings.HasPrefix(identifier, "gallery_"):
		item, err := s.store.GetGalleryItem(ctx, identifier)
		if err != nil {
			return nil, err
		}
		return &models.PortfolioItem{Type: models.TypeGallery, Data: item}, nil
	}

	return nil, fmt.Errorf("portfolio service: %q: %w", identifier, repository.ErrItemNotFound)
}

// FetchAllIdentifiers возвращает каталог идентификаторов с описаниями для AI.
func (s *PortfolioService) FetchAllIdentifiers(ctx context.Context) (models.IdentifierCatalog, error) {
	return s.store.ListIdentifiers(ctx)
}
