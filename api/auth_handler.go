package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devfolio/portfolio-backend/auth"
	"github.com/devfolio/portfolio-backend/database"
	"github.com/devfolio/portfolio-backend/errs"
	"github.com/devfolio/portfolio-backend/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	secret    []byte
	tokenTTL  time.Duration
}

func newAuthHandler(userRepo *database.UserRepo, secret []byte, tokenTTL time.Duration) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		secret:    secret,
		tokenTTL:  tokenTTL,
	}
}

// authResponse carries a freshly issued token alongside the public user view.
type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *userPayload `json:"user,omitempty"`
}

type verifyResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}

type adminProfileResponse struct {
	Success bool           `json:"success"`
	Profile profilePayload `json:"profile"`
}

// register provisions the admin account and immediately issues a token.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Username == "" || req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Please provide username, email, and password"))
			return
		}

		// One existence probe covers both unique fields
		exists, err := h.userRepo.ExistsByEmailOrUsername(req.Email, req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if exists {
			h.responder.WriteError(w, errs.NewConflictError("User already exists"))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("Error registering user"))
			return
		}

		user := models.User{
			Username: req.Username,
			Email:    req.Email,
			Password: hash,
			Role:     models.RoleAdmin,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		token, err := auth.IssueToken(user.ID, h.secret, h.tokenTTL)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("Error registering user"))
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, authResponse{
			Success: true,
			Message: "Admin registered successfully",
			Token:   token,
			User:    newUserPayload(&user),
		})
	}
}

// login checks the credentials and issues a token. A wrong password and an
// unknown email produce an identical response, so neither check leaks.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Please provide email and password"))
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil || !auth.CheckPassword(user.Password, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid email or password"))
			return
		}

		token, err := auth.IssueToken(user.ID, h.secret, h.tokenTTL)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("Error logging in"))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, authResponse{
			Success: true,
			Message: "Logged in successfully",
			Token:   token,
			User:    newUserPayload(user),
		})
	}
}

// logout only acknowledges. The token stays valid until its natural expiry;
// there is no server-side session to tear down.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, http.StatusOK, messageResponse{
			Success: true,
			Message: "Logged out successfully",
		})
	}
}

func (h authHandler) verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, verifyResponse{
			Success: true,
			Message: "Token is valid",
			UserID:  userID,
		})
	}
}

func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, authResponse{
			Success: true,
			User:    newUserPayload(user),
		})
	}
}

// updateProfile changes name and photo only. Fields absent from the request
// keep their current value; nothing is ever cleared here.
func (h authHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req struct {
			Name     string `json:"name"`
			PhotoURL string `json:"photoUrl"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		if req.Name != "" {
			user.Name = req.Name
		}
		if req.PhotoURL != "" {
			user.PhotoURL = req.PhotoURL
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, authResponse{
			Success: true,
			Message: "Profile updated successfully",
			User:    newUserPayload(user),
		})
	}
}

// adminProfile serves the site owner's public identity without auth: only
// name and photo, looked up by the admin role.
func (h authHandler) adminProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.userRepo.FindAdmin()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "admin profile", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Admin profile not found"))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, adminProfileResponse{
			Success: true,
			Profile: profilePayload{
				Name:     user.Name,
				PhotoURL: user.PhotoURL,
			},
		})
	}
}
