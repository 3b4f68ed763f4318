package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devfolio/portfolio-backend/errs"
)

// Project categories. Anything else is coerced to CategoryWeb.
const (
	CategoryWeb    = "Web"
	CategoryMobile = "Mobile"
	CategoryDesign = "Design"
	CategoryOther  = "Other"
)

// Project statuses. Anything else is coerced to StatusPublished.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// Schema-level length limits, enforced in BeforeSave so they apply to both
// creates and merged updates.
const (
	TitleMinLen       = 5
	DescriptionMinLen = 10
)

// Project represents a portfolio entry with its display metadata and a
// view counter bumped on every single-record fetch.
type Project struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title         string     `json:"title" gorm:"type:text;not null"`
	Description   string     `json:"description" gorm:"type:text;not null"`
	Technologies  StringList `json:"technologies" gorm:"type:text"`
	ImageURL      string     `json:"imageUrl" gorm:"column:image_url;type:text"`
	LiveURL       string     `json:"liveUrl" gorm:"column:live_url;type:text"`
	GithubURL     string     `json:"githubUrl" gorm:"column:github_url;type:text"`
	Category      string     `json:"category" gorm:"type:text;not null;default:Web"`
	DateCompleted time.Time  `json:"dateCompleted" gorm:"column:date_completed"`
	Featured      bool       `json:"featured" gorm:"not null;default:false"`
	Status        string     `json:"status" gorm:"type:text;not null;default:published"`
	ViewCount     int64      `json:"viewCount" gorm:"column:view_count;not null;default:0"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.DateCompleted.IsZero() {
		p.DateCompleted = time.Now().UTC()
	}
	return nil
}

// BeforeSave validates and normalizes the record. It runs on creates and on
// full-record saves, so partial updates are re-validated against the merged
// document.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)

	if utf8.RuneCountInString(p.Title) < TitleMinLen {
		return errs.NewValidationError("title",
			fmt.Sprintf("title must be at least %d characters", TitleMinLen))
	}
	if utf8.RuneCountInString(p.Description) < DescriptionMinLen {
		return errs.NewValidationError("description",
			fmt.Sprintf("description must be at least %d characters", DescriptionMinLen))
	}

	p.Category = NormalizeCategory(p.Category)
	p.Status = NormalizeStatus(p.Status)
	p.Technologies = p.Technologies.Compact()
	return nil
}

// NormalizeCategory coerces unknown categories to CategoryWeb.
func NormalizeCategory(category string) string {
	switch category {
	case CategoryWeb, CategoryMobile, CategoryDesign, CategoryOther:
		return category
	}
	return CategoryWeb
}

// NormalizeStatus coerces unknown statuses to StatusPublished.
func NormalizeStatus(status string) string {
	switch status {
	case StatusPublished, StatusDraft:
		return status
	}
	return StatusPublished
}
