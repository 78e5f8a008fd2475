package model

import "time"

// Message is a contact-form submission.  Messages are written without
// authentication and reviewed from the admin page.
type Message struct {
	ID        uint64    // messages.id
	Email     string    // messages.email
	Body      string    // messages.body
	CreatedAt time.Time // messages.created_at
}
