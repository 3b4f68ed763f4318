package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devfolio/portfolio-backend/errs"
)

// Contact is a message submitted through the public contact form. Immutable
// once created, except for the read flag.
type Contact struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" gorm:"type:text;not null"`
	Subject   string    `json:"subject" gorm:"type:text;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	IsRead    bool      `json:"isRead" gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)

	for field, value := range map[string]string{
		"name":    c.Name,
		"email":   c.Email,
		"subject": c.Subject,
		"message": c.Message,
	} {
		if value == "" {
			return errs.NewValidationError(field, field+" is required")
		}
	}
	return nil
}
