package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devfolio/portfolio-backend/database"
	"github.com/devfolio/portfolio-backend/errs"
	"github.com/devfolio/portfolio-backend/models"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

type projectResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *models.Project `json:"data"`
}

type projectListResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Pages   int64             `json:"pages"`
	Data    []*models.Project `json:"data"`
}

type featuredProjectsResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []*models.Project `json:"data"`
}

// createProjectRequest mirrors the writable project fields. Everything
// beyond title and description is optional.
type createProjectRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Technologies  []string   `json:"technologies"`
	ImageURL      string     `json:"imageUrl"`
	LiveURL       string     `json:"liveUrl"`
	GithubURL     string     `json:"githubUrl"`
	Category      string     `json:"category"`
	Featured      bool       `json:"featured"`
	Status        string     `json:"status"`
	DateCompleted *time.Time `json:"dateCompleted"`
}

// updateProjectRequest uses pointers so only fields present in the body
// overwrite the stored record.
type updateProjectRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Technologies  *[]string  `json:"technologies"`
	ImageURL      *string    `json:"imageUrl"`
	LiveURL       *string    `json:"liveUrl"`
	GithubURL     *string    `json:"githubUrl"`
	Category      *string    `json:"category"`
	Featured      *bool      `json:"featured"`
	Status        *string    `json:"status"`
	DateCompleted *time.Time `json:"dateCompleted"`
}

// list returns one page of projects, newest first. Page and limit default to
// 1 and 10; the limit is passed through unclamped.
func (h projectHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", defaultPage)
		limit := queryInt(r, "limit", defaultLimit)

		projects, total, err := h.projectRepo.FindPage(page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		pages := total / int64(limit)
		if total%int64(limit) != 0 {
			pages++
		}

		h.responder.WriteJSON(w, http.StatusOK, projectListResponse{
			Success: true,
			Count:   len(projects),
			Total:   total,
			Page:    page,
			Pages:   pages,
			Data:    projects,
		})
	}
}

func (h projectHandler) featured() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindFeatured()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "featured projects", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, featuredProjectsResponse{
			Success: true,
			Count:   len(projects),
			Data:    projects,
		})
	}
}

// getByID fetches a single project. Every successful fetch bumps the view
// counter as part of the read.
func (h projectHandler) getByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectIDParam(w, r)
		if !ok {
			return
		}

		project, err := h.projectRepo.FindByIDAndIncrementViews(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, projectResponse{
			Success: true,
			Data:    project,
		})
	}
}

func (h projectHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title == "" || req.Description == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Title and description are required"))
			return
		}

		project := models.Project{
			Title:        req.Title,
			Description:  req.Description,
			Technologies: models.StringList(req.Technologies),
			ImageURL:     req.ImageURL,
			LiveURL:      req.LiveURL,
			GithubURL:    req.GithubURL,
			Category:     req.Category,
			Featured:     req.Featured,
			Status:       req.Status,
		}
		if req.DateCompleted != nil {
			project.DateCompleted = *req.DateCompleted
		}

		// Length limits live in the schema hooks, not here; a short title
		// passes this handler and is rejected by BeforeSave.
		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, projectResponse{
			Success: true,
			Message: "Project created successfully",
			Data:    &project,
		})
	}
}

// update overwrites only the fields present in the body, then saves the
// merged record so schema validation runs against it as a whole.
func (h projectHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectIDParam(w, r)
		if !ok {
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		var req updateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title != nil {
			project.Title = *req.Title
		}
		if req.Description != nil {
			project.Description = *req.Description
		}
		if req.Technologies != nil {
			project.Technologies = models.StringList(*req.Technologies)
		}
		if req.ImageURL != nil {
			project.ImageURL = *req.ImageURL
		}
		if req.LiveURL != nil {
			project.LiveURL = *req.LiveURL
		}
		if req.GithubURL != nil {
			project.GithubURL = *req.GithubURL
		}
		if req.Category != nil {
			project.Category = *req.Category
		}
		if req.Featured != nil {
			project.Featured = *req.Featured
		}
		if req.Status != nil {
			project.Status = *req.Status
		}
		if req.DateCompleted != nil {
			project.DateCompleted = *req.DateCompleted
		}

		if err := h.projectRepo.Save(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, projectResponse{
			Success: true,
			Message: "Project updated successfully",
			Data:    project,
		})
	}
}

func (h projectHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectIDParam(w, r)
		if !ok {
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, projectResponse{
			Success: true,
			Message: "Project deleted successfully",
			Data:    project,
		})
	}
}

// toggleFeatured flips the flag server-side so the caller never needs the
// current value.
func (h projectHandler) toggleFeatured() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectIDParam(w, r)
		if !ok {
			return
		}

		project, err := h.projectRepo.ToggleFeatured(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, projectResponse{
			Success: true,
			Message: "Project featured status toggled",
			Data:    project,
		})
	}
}

func (h projectHandler) projectIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
		return uuid.Nil, false
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
		return uuid.Nil, false
	}
	return projectID, true
}

// queryInt reads a positive integer query parameter, falling back to the
// default on anything absent or unparsable.
func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
