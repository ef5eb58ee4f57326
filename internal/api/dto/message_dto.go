package dto

import (
	"time"

	"github.com/supportdesk/helpdesk-service/internal/domain"
)

// MessageResponse represents a thread entry.
type MessageResponse struct {
	ID          int64         `json:"id"`
	TicketID    int64         `json:"ticket_id"`
	Content     string        `json:"content"`
	Attachments []string      `json:"attachments"`
	Sender      *UserResponse `json:"sender,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewMessageResponse maps a domain message.
func NewMessageResponse(msg *domain.Message) MessageResponse {
	resp := MessageResponse{
		ID:          msg.ID,
		TicketID:    msg.TicketID,
		Content:     msg.Content,
		Attachments: msg.Attachments,
		CreatedAt:   msg.CreatedAt,
	}
	if resp.Attachments == nil {
		resp.Attachments = []string{}
	}
	if msg.Sender != nil {
		sender := NewUserResponse(msg.Sender)
		resp.Sender = &sender
	}
	return resp
}
