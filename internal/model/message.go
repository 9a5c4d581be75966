package model

import "time"

// Message is a note left through the contact form.
//
// It is the only entity the site persists. IDs are xids generated by the
// repository on insert.
type Message struct {
	ID        string    `json:"id"        db:"id"`
	Name      string    `json:"name"      db:"name"`
	Email     string    `json:"email"     db:"email"`
	Body      string    `json:"body"      db:"body"`
	Read      bool      `json:"read"      db:"read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
