package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/repository"
)

// ContactHandler serves the unauthenticated contact form.
type ContactHandler struct {
	Messages *repository.MessageRepo
}

func NewContactHandler(messages *repository.MessageRepo) *ContactHandler {
	return &ContactHandler{Messages: messages}
}

// Page serves the contact form.
func (h *ContactHandler) Page(c echo.Context) error {
	return c.Render(http.StatusOK, "contact.html", echo.Map{})
}

// Submit stores a contact message.  Persistence failures degrade to an
// inline message; the raw error stays in the server log only.
func (h *ContactHandler) Submit(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	body := strings.TrimSpace(c.FormValue("message"))
	if email == "" || body == "" {
		return c.Render(http.StatusOK, "contact.html", echo.Map{"Msg": "Email and message are required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Messages.Create(ctx, email, body); err != nil {
		log.Printf("contact: save message failed: %v", err)
		return c.Render(http.StatusOK, "contact.html", echo.Map{"Msg": "Could not send the message, try again"})
	}
	return c.Render(http.StatusOK, "contact.html", echo.Map{"Msg": "Message has been sent."})
}

// Delete removes a message by id and returns to the contact page.
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/contact")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Messages.Delete(ctx, id); err != nil {
		log.Printf("contact: delete message %d failed: %v", id, err)
	}
	return c.Redirect(http.StatusFound, "/contact")
}
