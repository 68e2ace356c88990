package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// GalleryItem описывает элемент галереи (скриншот, фото, видео-превью).
type GalleryItem struct {
	ID            int64          `db:"id" json:"id"`
	Identifier    string         `db:"identifier" json:"identifier"`
	AIDescription string         `db:"ai_description" json:"ai_description"`
	Title         string         `db:"title" json:"title"`
	Description   *string        `db:"description" json:"description,omitempty"`
	ImageURL      string         `db:"image_url" json:"image_url"`
	AltText       *string        `db:"alt_text" json:"alt_text,omitempty"`
	Category      string         `db:"category" json:"category"`
	Metadata      types.JSONText `db:"metadata" json:"metadata,omitempty"`
	ProjectID     *int64         `db:"project_id" json:"project_id,omitempty"`
	IsFeatured    bool           `db:"is_featured" json:"is_featured"`
	DisplayOrder  int            `db:"display_order" json:"display_order"`
	IsActive      bool           `db:"is_active" json:"is_active"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
