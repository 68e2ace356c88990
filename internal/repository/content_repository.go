package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/markrenzo/portfolio-backend/internal/models"
)

// ErrItemNotFound возвращается, когда активная запись с идентификатором не найдена.
var ErrItemNotFound = errors.New("portfolio item not found")

// ContentRepository отвечает за чтение контента портфолио.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository создаёт экземпляр репозитория.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const workExperienceColumns = `
	id, identifier, ai_description, company_name, position_title, employment_type,
	location, start_date, end_date, is_current, description, achievements,
	company_logo_url, company_website, display_order, is_active, created_at, updated_at`

// GetWorkExperience возвращает активную запись опыта по идентификатору.
func (r *ContentRepository) GetWorkExperience(ctx context.Context, identifier string) (*models.WorkExperience, error) {
	query := `SELECT` + workExperienceColumns + `
		FROM work_experience
		WHERE is_active = TRUE AND identifier = $1`

	var item models.WorkExperience
	if err := r.db.GetContext(ctx, &item, query, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("content repository: get work experience %w", err)
	}
	return &item, nil
}

// ListWorkExperience возвращает все активные записи опыта.
func (r *ContentRepository) ListWorkExperience(ctx context.Context) ([]models.WorkExperience, error) {
	query := `SELECT` + workExperienceColumns + `
		FROM work_experience
		WHERE is_active = TRUE
		ORDER BY display_order ASC, start_date DESC`

	var items []models.WorkExperience
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("content repository: list work experience %w", err)
	}
	return items, nil
}

const projectColumns = `
	id, identifier, ai_description, title, slug, short_description, full_description,
	project_type, status, github_url, live_demo_url, featured_image_url, tech_stack,
	start_date, end_date, is_featured, display_order, is_active, created_at, updated_at`

// GetProject возвращает активный проект по идентификатору.
func (r *ContentRepository) GetProject(ctx context.Context, identifier string) (*models.Project, error) {
	query := `SELECT` + projectColumns + `
		FROM projects
		WHERE is_active = TRUE AND identifier = $1`

	var item models.Project
	if err := r.db.GetContext(ctx, &item, query, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("content repository: get project %w", err)
	}
	return &item, nil
}

// ListProjects возвращает все активные проекты.
func (r *ContentRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	query := `SELECT` + projectColumns + `
		FROM projects
		WHERE is_active = TRUE
		ORDER BY display_order ASC, start_date DESC`

	var items []models.Project
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("content repository: list projects %w", err)
	}
	return items, nil
}

const toolColumns = `
	id, identifier, ai_description, name, category, description, icon_url, website_url,
	proficiency_level, years_experience, is_featured, display_order, is_active,
	created_at, updated_at`

// GetTool возвращает активный инструмент по идентификатору.
func (r *ContentRepository) GetTool(ctx context.Context, identifier string) (*models.Tool, error) {
	query := `SELECT` + toolColumns + `
		FROM tools
		WHERE is_active = TRUE AND identifier = $1`

	var item models.Tool
	if err := r.db.GetContext(ctx, &item, query, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("content repository: get tool %w", err)
	}
	return &item, nil
}

// ListTools возвращает все активные инструменты.
func (r *ContentRepository) ListTools(ctx context.Context) ([]models.Tool, error) {
	query := `SELECT` + toolColumns + `
		FROM tools
		WHERE is_active = TRUE
		ORDER BY display_order ASC, name ASC`

	var items []models.Tool
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("content repository: list tools %w", err)
	}
	return items, nil
}

const skillColumns = `
	id, identifier, ai_description, name, category, description, proficiency_percentage,
	skill_type, is_featured, display_order, is_active, created_at, updated_at`

// GetSkill возвращает активный навык по идентификатору.
func (r *ContentRepository) GetSkill(ctx context.Context, identifier string) (*models.Skill, error) {
	query := `SELECT` + skillColumns + `
		FROM skills
		WHERE is_active = TRUE AND identifier = $1`

	var item models.Skill
	if err := r.db.GetContext(ctx, &item, query, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("content repository: get skill %w", err)
	}
	return &item, nil
}

// ListSkills возвращает все активные навыки.
func (r *ContentRepository) ListSkills(ctx context.Context) ([]models.Skill, error) {
	query := `SELECT` + skillColumns + `
		FROM skills
		WHERE is_active = TRUE
		ORDER BY display_order ASC, proficiency_percentage DESC`

	var items []models.Skill
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("content repository: list skills %w", err)
	}
	return items, nil
}

const galleryColumns = `
	id, identifier, ai_description, title, description, image_url, alt_text, category,
	metadata, project_id, is_featured, display_order, is_active, created_at, updated_at`

// GetGalleryItem возвращает активный элемент галереи по идентификатору.
func (r *ContentRepository) GetGalleryItem(ctx context.Context, identifier string) (*models.GalleryItem, error) {
	query := `SELECT` + galleryColumns + `
		FROM gallery
		WHERE is_active = TRUE AND identifier = $1`

	var item models.GalleryItem
	if err := r.db.GetContext(ctx, &item, query, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("content repository: get gallery item %w", err)
	}
	return &item, nil
}

// ListGallery возвращает все активные элементы галереи.
func (r *ContentRepository) ListGallery(ctx context.Context) ([]models.GalleryItem, error) {
	query := `SELECT` + galleryColumns + `
		FROM gallery
		WHERE is_active = TRUE
		ORDER BY display_order ASC, created_at DESC`

	var items []models.GalleryItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("content repository: list gallery %w", err)
	}
	return items, nil
}

// identifierTables задаёт порядок категорий в каталоге идентификаторов.
var identifierTables = []struct {
	category string
	table    string
}{
	{"work_experience", "work_experience"},
	{"projects", "projects"},
	{"tools", "tools"},
	{"skills", "skills"},
	{"gallery", "gallery"},
}

// ListIdentifiers возвращает каталог идентификаторов с описаниями для AI,
// сгруппированный по категориям.
func (r *ContentRepository) ListIdentifiers(ctx context.Context) (models.IdentifierCatalog, error) {
	catalog := make(models.IdentifierCatalog, len(identifierTables))
	for _, t := range identifierTables {
		query := fmt.Sprintf(
			`SELECT identifier, ai_description FROM %s WHERE is_active = TRUE ORDER BY display_order ASC`,
			t.table,
		)

		var infos []models.IdentifierInfo
		if err := r.db.SelectContext(ctx, &infos, query); err != nil {
			return nil, fmt.Errorf("content repository: list identifiers %s %w", t.table, err)
		}
		catalog[t.category] = infos
	}
	return catalog, nil
}
