package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/markrenzo/portfolio-backend/internal/cards"
	"github.com/markrenzo/portfolio-backend/internal/repository"
	"github.com/markrenzo/portfolio-backend/internal/service"
)

// PortfolioHandler отдаёт контент портфолио.
type PortfolioHandler struct {
	svc      *service.PortfolioService
	content  *repository.ContentRepository
	resolver *cards.Resolver
}

// NewPortfolioHandler создаёт новый хэндлер.
func NewPortfolioHandler(svc *service.PortfolioService, content *repository.ContentRepository, resolver *cards.Resolver) *PortfolioHandler {
	return &PortfolioHandler{svc: svc, content: content, resolver: resolver}
}

// ListIdentifiers GET /api/identifiers
func (h *PortfolioHandler) ListIdentifiers(c *gin.Context) {
	catalog, err := h.svc.FetchAllIdentifiers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось получить список идентификаторов"})
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// GetItem GET /api/portfolio/:identifier
func (h *PortfolioHandler) GetItem(c *gin.Context) {
	identifier := c.Param("identifier")

	item, err := h.svc.FetchPortfolioItem(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "элемент не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось получить элемент"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetCard GET /api/cards/:identifier
// Возвращает карточку в виде, готовом к показу, из предзагруженного кэша.
func (h *PortfolioHandler) GetCard(c *gin.Context) {
	view := h.resolver.Resolve(c.Param("identifier"))
	if view.State == cards.StateError {
		c.JSON(http.StatusNotFound, view)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListWorkExperience GET /api/work
func (h *PortfolioHandler) ListWorkExperience(c *gin.Context) {
	items, err := h.content.ListWorkExperience(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось получить опыт работы"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListProjects GET /api/projects
func (h *PortfolioHandler) ListProjects(c *gin.Context) {
	items, err := h.content.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось получить проекты"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListTools GET /api/tools
func (h *PortfolioHandler) ListTools(c *gin.Context) {
	items, err := h.content.ListTools(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось получить инструменты"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListSkills GET /api/skills
func (h *PortfolioHandler) ListSkills(c *gin.Context) {
	items, err := h.content.ListSkills(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось получить навыки"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListGallery GET /api/gallery
func (h *PortfolioHandler) ListGallery(c *gin.Context) {
	items, err := h.content.ListGallery(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось получить галерею"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
