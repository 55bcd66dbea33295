package models

import (
	"errors"
	"time"
)

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Validate validates a contact form submission.
func (m *ContactMessage) Validate() error {
	if m.Name == "" {
		return errors.New("name is required")
	}
	if err := ValidateEmail(m.Email); err != nil {
		return err
	}
	if m.Message == "" {
		return errors.New("message is required")
	}
	return nil
}
