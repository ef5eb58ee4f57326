package domain

import "time"

// Article is a standalone knowledge base document, unrelated to the ticket
// lifecycle. Publicly readable, maintained by admins.
type Article struct {
	ID        int64
	Title     string
	Content   string
	Category  string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time

	Author *User
}
