package api

import (
	"time"

	"github.com/devfolio/portfolio-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, c map[string]string, secret []byte, tokenTTL time.Duration) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(database.UserRepo(), secret, tokenTTL),
		projectHandler: newProjectHandler(database.ProjectRepo()),
		contactHandler: newContactHandler(database.ContactRepo(), c),
	}
}
