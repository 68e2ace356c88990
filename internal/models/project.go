package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Статусы проекта.
const (
	ProjectStatusCompleted  = "completed"
	ProjectStatusInProgress = "in-progress"
	ProjectStatusPlanning   = "planning"
	ProjectStatusArchived   = "archived"
)

// StringList хранит JSONB-массив строк (например tech_stack).
type StringList []string

// Value сериализует список в JSONB.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan читает JSONB-значение из базы.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("models: неподдерживаемый тип для StringList: %T", src)
	}
}

// Project описывает проект портфолио.
type Project struct {
	ID               int64      `db:"id" json:"id"`
	Identifier       string     `db:"identifier" json:"identifier"`
	AIDescription    string     `db:"ai_description" json:"ai_description"`
	Title            string     `db:"title" json:"title"`
	Slug             string     `db:"slug" json:"slug"`
	ShortDescription *string    `db:"short_description" json:"short_description,omitempty"`
	FullDescription  *string    `db:"full_description" json:"full_description,omitempty"`
	ProjectType      string     `db:"project_type" json:"project_type"`
	Status           string     `db:"status" json:"status"`
	GithubURL        *string    `db:"github_url" json:"github_url,omitempty"`
	LiveDemoURL      *string    `db:"live_demo_url" json:"live_demo_url,omitempty"`
	FeaturedImageURL *string    `db:"featured_image_url" json:"featured_image_url,omitempty"`
	TechStack        StringList `db:"tech_stack" json:"tech_stack"`
	StartDate        *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate          *time.Time `db:"end_date" json:"end_date,omitempty"`
	IsFeatured       bool       `db:"is_featured" json:"is_featured"`
	DisplayOrder     int        `db:"display_order" json:"display_order"`
	IsActive         bool       `db:"is_active" json:"is_active"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
