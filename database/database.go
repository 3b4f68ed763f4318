package database

import (
	"gorm.io/gorm"

	"github.com/devfolio/portfolio-backend/models"
)

type Database struct {
	userRepo    *UserRepo
	projectRepo *ProjectRepo
	contactRepo *ContactRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:    NewUserRepo(db),
		projectRepo: NewProjectRepo(db),
		contactRepo: NewContactRepo(db),
	}
}

// AutoMigrate creates or updates the schema for every collection.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Contact{},
	)
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}
