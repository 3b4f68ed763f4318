package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devfolio/portfolio-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindPage returns one page of projects, newest first, together with the
// total number of records. The caller supplies the (unclamped) page size.
func (r *ProjectRepo) FindPage(page, limit int) ([]*models.Project, int64, error) {
	var projects []*models.Project
	offset := (page - 1) * limit
	err := r.db.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// FindFeatured returns featured projects that are published, newest first.
// Drafts never appear here, featured or not.
func (r *ProjectRepo) FindFeatured() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Where("featured = ? AND status = ?", true, models.StatusPublished).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when no project matches.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDAndIncrementViews bumps the view counter in a single UPDATE and
// returns the updated record, or nil when no project matches. The increment
// happens database-side so concurrent fetches never lose counts.
func (r *ProjectRepo) FindByIDAndIncrementViews(id uuid.UUID) (*models.Project, error) {
	result := r.db.Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// ToggleFeatured flips the featured flag in place and stamps the update
// time, without the caller having to know the current value.
func (r *ProjectRepo) ToggleFeatured(id uuid.UUID) (*models.Project, error) {
	result := r.db.Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"featured":   gorm.Expr("NOT featured"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Save writes the full record back, re-running schema validation on it.
func (r *ProjectRepo) Save(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
