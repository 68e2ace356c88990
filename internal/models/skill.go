package models

import "time"

// Skill описывает навык из портфолио.
type Skill struct {
	ID                    int64     `db:"id" json:"id"`
	Identifier            string    `db:"identifier" json:"identifier"`
	AIDescription         string    `db:"ai_description" json:"ai_description"`
	Name                  string    `db:"name" json:"name"`
	Category              string    `db:"category" json:"category"`
	Description           *string   `db:"description" json:"description,omitempty"`
	ProficiencyPercentage int       `db:"proficiency_percentage" json:"proficiency_percentage"`
	SkillType             string    `db:"skill_type" json:"skill_type"`
	IsFeatured            bool      `db:"is_featured" json:"is_featured"`
	DisplayOrder          int       `db:"display_order" json:"display_order"`
	IsActive              bool      `db:"is_active" json:"is_active"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}
