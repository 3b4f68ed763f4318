package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleAdmin is the only role the service provisions. The public profile
// endpoint resolves the site owner by this role value.
const RoleAdmin = "admin"

// User represents the administrative account. The password column holds a
// bcrypt hash and is never serialized.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username  string    `json:"username" gorm:"type:text;not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"type:text;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"type:text;not null"`
	Name      string    `json:"name" gorm:"type:text"`
	PhotoURL  string    `json:"photoUrl" gorm:"column:photo_url;type:text"`
	Role      string    `json:"role" gorm:"type:text;not null;default:admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleAdmin
	}
	return nil
}
