package api

import (
	"github.com/google/uuid"

	"github.com/devfolio/portfolio-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler    authHandler
	projectHandler projectHandler
	contactHandler contactHandler
}

// userPayload is the public view of a user record. The password hash never
// leaves the persistence layer.
type userPayload struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	PhotoURL string    `json:"photoUrl"`
	Role     string    `json:"role"`
}

func newUserPayload(user *models.User) *userPayload {
	return &userPayload{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		PhotoURL: user.PhotoURL,
		Role:     user.Role,
	}
}

// profilePayload is the public site-owner identity served without auth.
type profilePayload struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

// messageResponse is the minimal success envelope.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
