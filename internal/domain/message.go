package domain

import "time"

// Message is one entry in a ticket thread. Messages are immutable once
// created; attachments hold the stored file names in upload order.
type Message struct {
	ID          int64
	TicketID    int64
	SenderID    int64
	Content     string
	Attachments []string
	CreatedAt   time.Time

	Sender *User
}

// HasAttachment reports whether the stored name belongs to this message.
func (m *Message) HasAttachment(storedName string) bool {
	for _, name := range m.Attachments {
		if name == storedName {
			return true
		}
	}
	return false
}
