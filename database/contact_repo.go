package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devfolio/portfolio-backend/models"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// FindAll returns every contact message, newest first.
func (r *ContactRepo) FindAll() ([]*models.Contact, error) {
	var contacts []*models.Contact
	err := r.db.Order("created_at DESC").Find(&contacts).Error
	return contacts, err
}

// FindByID returns a contact message by its ID, or nil when none matches.
func (r *ContactRepo) FindByID(id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// MarkRead sets the read flag and returns the updated record, or nil when no
// message matches. Marking an already-read message again is a no-op success.
func (r *ContactRepo) MarkRead(id uuid.UUID) (*models.Contact, error) {
	result := r.db.Model(&models.Contact{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// Add inserts a new contact message into the database
func (r *ContactRepo) Add(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

// Delete removes a contact message from the database by id
func (r *ContactRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Contact{}, "id = ?", id).Error
}
