package models

import "time"

// WorkExperience описывает запись об опыте работы.
type WorkExperience struct {
	ID             int64      `db:"id" json:"id"`
	Identifier     string     `db:"identifier" json:"identifier"`
	AIDescription  string     `db:"ai_description" json:"ai_description"`
	CompanyName    string     `db:"company_name" json:"company_name"`
	PositionTitle  string     `db:"position_title" json:"position_title"`
	EmploymentType string     `db:"employment_type" json:"employment_type"`
	Location       *string    `db:"location" json:"location,omitempty"`
	StartDate      time.Time  `db:"start_date" json:"start_date"`
	EndDate        *time.Time `db:"end_date" json:"end_date,omitempty"`
	IsCurrent      bool       `db:"is_current" json:"is_current"`
	Description    *string    `db:"description" json:"description,omitempty"`
	Achievements   *string    `db:"achievements" json:"achievements,omitempty"`
	CompanyLogoURL *string    `db:"company_logo_url" json:"company_logo_url,omitempty"`
	CompanyWebsite *string    `db:"company_website" json:"company_website,omitempty"`
	DisplayOrder   int        `db:"display_order" json:"display_order"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
