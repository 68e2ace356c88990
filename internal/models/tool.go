package models

import "time"

// Tool описывает инструмент или технологию из портфолио.
type Tool struct {
	ID               int64     `db:"id" json:"id"`
	Identifier       string    `db:"identifier" json:"identifier"`
	AIDescription    string    `db:"ai_description" json:"ai_description"`
	Name             string    `db:"name" json:"name"`
	Category         string    `db:"category" json:"category"`
	Description      *string   `db:"description" json:"description,omitempty"`
	IconURL          *string   `db:"icon_url" json:"icon_url,omitempty"`
	WebsiteURL       *string   `db:"website_url" json:"website_url,omitempty"`
	ProficiencyLevel string    `db:"proficiency_level" json:"proficiency_level"`
	YearsExperience  int       `db:"years_experience" json:"years_experience"`
	IsFeatured       bool      `db:"is_featured" json:"is_featured"`
	DisplayOrder     int       `db:"display_order" json:"display_order"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
