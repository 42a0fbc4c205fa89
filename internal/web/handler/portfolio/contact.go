package portfolio

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	messageController "github.com/folio-cms/folio/internal/db/controller/message"
	"github.com/folio-cms/folio/internal/web/navigation"
)

func contactNav() *navigation.Context {
	return navigation.NewContext("Contact", navigation.SectionContact, "contact").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Contact", ContactPath, true)
}

// Contact renders the contact form.
func (s *Service) Contact(c *fiber.Ctx) error {
	return s.render(c, ContactTemplate, s.loadProfile(c), contactNav(), fiber.Map{
		"Sent": c.Query("sent") == "1",
	})
}

// PostContact stores the submitted form and redirects back to the contact page.
func (s *Service) PostContact(c *fiber.Ctx) error {
	var in messageController.Input
	if err := c.BodyParser(&in); err != nil {
		c.Status(fiber.StatusBadRequest)

		return s.render(c, ContactTemplate, s.loadProfile(c), contactNav(), fiber.Map{
			"error": "Invalid form data",
		})
	}

	m, err := messageController.Create(s.db.WithContext(c.UserContext()), in)
	if err != nil {
		msg, status := "Failed to send message", fiber.StatusInternalServerError
		if errors.Is(err, messageController.ErrInvalidMessage) {
			msg, status = "Please provide your name, a valid email and a message", fiber.StatusBadRequest
		} else {
			log.Error().Err(err).Msg("failed to store contact message")
		}

		c.Status(status)

		return s.render(c, ContactTemplate, s.loadProfile(c), contactNav(), fiber.Map{
			"error": msg,
			"Form":  in,
		})
	}

	log.Info().Uint64("id", m.ID).Msg("contact message received")

	return c.Redirect(ContactPath + "?sent=1")
}
