package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/supportdesk/helpdesk-service/internal/events"
	"github.com/supportdesk/helpdesk-service/internal/notify"
)

// NotificationService turns ticket lifecycle events into Telegram messages.
// Delivery is best effort: failures are logged and never surface to the
// request that produced the event.
type NotificationService struct {
	telegram *notify.Telegram
	logger   *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(telegram *notify.Telegram, logger *zap.Logger) *NotificationService {
	return &NotificationService{telegram: telegram, logger: logger}
}

// Register subscribes the service to the ticket lifecycle events.
func (s *NotificationService) Register(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTicketCreated, s.onTicketCreated)
	dispatcher.Subscribe(events.EventTicketAssigned, s.onTicketAssigned)
	dispatcher.Subscribe(events.EventTicketClosed, s.onTicketClosed)
}

func (s *NotificationService) onTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	company := payload.CompanyName
	if company == "" {
		company = "not specified"
	}
	text := fmt.Sprintf(
		"<b>New ticket #%d</b>\n<b>Subject:</b> %s\n<b>Description:</b> %s\n<b>Priority:</b> %s\n<b>Customer:</b> %s (%s)\n<b>Company:</b> %s",
		event.TicketID,
		payload.Title,
		payload.Description,
		payload.Priority,
		payload.CustomerName,
		payload.CustomerEmail,
		company,
	)
	s.send(text)
	return nil
}

func (s *NotificationService) onTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok {
		return nil
	}
	text := fmt.Sprintf("<b>Ticket #%d</b> assigned to <b>%s</b>", event.TicketID, payload.AgentUsername)
	s.send(text)
	return nil
}

func (s *NotificationService) onTicketClosed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketClosedPayload)
	if !ok {
		return nil
	}
	text := fmt.Sprintf("<b>Ticket #%d</b> closed!\nSubject: %s", event.TicketID, payload.Title)
	s.send(text)
	return nil
}

// send runs delivery off the request path so a slow Telegram API cannot
// stall ticket operations.
func (s *NotificationService) send(text string) {
	if s.telegram == nil || !s.telegram.Enabled() {
		return
	}
	go s.telegram.Send(context.Background(), text)
}
