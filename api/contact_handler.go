package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devfolio/portfolio-backend/database"
	"github.com/devfolio/portfolio-backend/errs"
	"github.com/devfolio/portfolio-backend/models"
	"github.com/devfolio/portfolio-backend/services"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo *database.ContactRepo
	config      map[string]string
}

func newContactHandler(contactRepo *database.ContactRepo, c map[string]string) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
		config:      c,
	}
}

type contactResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *models.Contact `json:"data"`
}

type contactListResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []*models.Contact `json:"data"`
}

// create accepts a message from the public contact form. The optional owner
// notification runs in the background and never affects the response.
func (h contactHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Subject string `json:"subject"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if strings.TrimSpace(req.Name) == "" ||
			strings.TrimSpace(req.Email) == "" ||
			strings.TrimSpace(req.Subject) == "" ||
			strings.TrimSpace(req.Message) == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("All fields are required"))
			return
		}

		contact := models.Contact{
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Message: req.Message,
		}
		if err := h.contactRepo.Add(&contact); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "contact message", err))
			return
		}

		go services.NotifyContactMessage(h.config, &contact)

		h.responder.WriteJSON(w, http.StatusCreated, contactResponse{
			Success: true,
			Message: "Message sent successfully",
			Data:    &contact,
		})
	}
}

func (h contactHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contacts, err := h.contactRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact messages", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, contactListResponse{
			Success: true,
			Count:   len(contacts),
			Data:    contacts,
		})
	}
}

// markRead flips the read flag. Repeating the call on an already-read
// message is a no-op success.
func (h contactHandler) markRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, ok := h.contactIDParam(w, r)
		if !ok {
			return
		}

		contact, err := h.contactRepo.MarkRead(contactID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "contact message", err))
			return
		}
		if contact == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Message not found"))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, contactResponse{
			Success: true,
			Message: "Message marked as read",
			Data:    contact,
		})
	}
}

func (h contactHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, ok := h.contactIDParam(w, r)
		if !ok {
			return
		}

		contact, err := h.contactRepo.FindByID(contactID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact message", err))
			return
		}
		if contact == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Message not found"))
			return
		}

		if err := h.contactRepo.Delete(contactID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "contact message", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, contactResponse{
			Success: true,
			Message: "Message deleted successfully",
			Data:    contact,
		})
	}
}

func (h contactHandler) contactIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	contactIDStr := chi.URLParam(r, "contactID")
	if contactIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing contactID"))
		return uuid.Nil, false
	}

	contactID, err := uuid.Parse(contactIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid contactID"))
		return uuid.Nil, false
	}
	return contactID, true
}
