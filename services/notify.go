package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/devfolio/portfolio-backend/config"
	"github.com/devfolio/portfolio-backend/models"
)

// NotifyContactMessage emails the site owner about a new contact form
// submission. Best effort: it is a no-op without CONTACT_NOTIFY_EMAIL and a
// Resend key, and failures are only logged.
func NotifyContactMessage(cfg map[string]string, contact *models.Contact) {
	recipient := config.GetString(cfg, "CONTACT_NOTIFY_EMAIL", "")
	if recipient == "" || config.GetString(cfg, "RESEND_API_KEY", "") == "" {
		log.Debug().Msg("Contact notification disabled, skipping")
		return
	}

	subject := fmt.Sprintf("New contact message: %s", contact.Subject)
	body := fmt.Sprintf("From: %s <%s>\n\n%s", contact.Name, contact.Email, contact.Message)

	if err := SendEmail(cfg, subject, body, []string{recipient}); err != nil {
		log.Error().Err(err).Str("contactID", contact.ID.String()).Msg("Failed to send contact notification")
	}
}
