package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/supportdesk/helpdesk-service/internal/auth"
	"github.com/supportdesk/helpdesk-service/internal/domain"
	"github.com/supportdesk/helpdesk-service/internal/repository"
	apperrors "github.com/supportdesk/helpdesk-service/pkg/util"
)

// AttachmentStore persists uploaded files per ticket.
type AttachmentStore interface {
	Save(ticketID int64, filename string, r io.Reader) (string, error)
	Open(ticketID int64, storedName string) (io.ReadCloser, error)
	Remove(ticketID int64, storedName string) error
}

var allowedAttachmentExts = map[string]struct{}{
	".jpg": {}, ".png": {}, ".gif": {}, ".pdf": {}, ".txt": {},
}

// AttachmentUpload is a single incoming file.
type AttachmentUpload struct {
	FileName string
	Size     int64
	Content  io.Reader
}

// MessageService manages ticket threads and their attachments.
type MessageService struct {
	messages repository.MessageRepository
	tickets  repository.TicketRepository
	statuses repository.StatusRepository
	store    AttachmentStore
	maxBytes int64
	logger   *zap.Logger
}

// MessageDependencies bundles collaborators for the message service.
type MessageDependencies struct {
	MessageRepo repository.MessageRepository
	TicketRepo  repository.TicketRepository
	StatusRepo  repository.StatusRepository
	Store       AttachmentStore
	MaxBytes    int64
	Logger      *zap.Logger
}

// NewMessageService constructs the service.
func NewMessageService(deps MessageDependencies) *MessageService {
	return &MessageService{
		messages: deps.MessageRepo,
		tickets:  deps.TicketRepo,
		statuses: deps.StatusRepo,
		store:    deps.Store,
		maxBytes: deps.MaxBytes,
		logger:   deps.Logger,
	}
}

// Post appends a message to a ticket thread. Attachments are all-or-nothing:
// every rejected file is reported in one error and nothing is stored.
// Replies by agents and customers move the ticket to the matching awaiting
// status; admin replies only bump updated_at.
func (s *MessageService) Post(ctx context.Context, actor *domain.User, ticketID int64, content string, uploads []AttachmentUpload) (*domain.Message, error) {
	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !auth.AllowsTicket(actor, auth.TicketActionMessage, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("message content is required", nil)
	}

	var rejected []string
	for _, up := range uploads {
		ext := strings.ToLower(filepath.Ext(up.FileName))
		if _, ok := allowedAttachmentExts[ext]; !ok || up.Size > s.maxBytes {
			rejected = append(rejected, up.FileName)
		}
	}
	if len(rejected) > 0 {
		return nil, apperrors.NewAttachmentRejected(rejected)
	}

	stored := make([]string, 0, len(uploads))
	for _, up := range uploads {
		name, err := s.store.Save(ticketID, up.FileName, up.Content)
		if err != nil {
			s.cleanup(ticketID, stored)
			return nil, apperrors.NewInternalError(err)
		}
		stored = append(stored, name)
	}

	var statusID *int64
	if next, ok := domain.ReplyTransition(actor.Role); ok {
		status, err := s.statuses.GetByName(ctx, next)
		if err == nil {
			statusID = &status.ID
		} else if !errors.Is(err, pgx.ErrNoRows) {
			s.cleanup(ticketID, stored)
			return nil, apperrors.MapError(err)
		}
		// A missing status row degrades to a plain updated_at bump.
	}

	msg := &domain.Message{
		TicketID:    ticketID,
		SenderID:    actor.ID,
		Content:     content,
		Attachments: stored,
	}
	if err := s.messages.CreateWithStatus(ctx, msg, statusID); err != nil {
		s.cleanup(ticketID, stored)
		return nil, apperrors.MapError(err)
	}
	msg.Sender = actor
	return msg, nil
}

// List returns the ticket thread oldest first.
func (s *MessageService) List(ctx context.Context, viewer *domain.User, ticketID int64) ([]domain.Message, error) {
	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !auth.AllowsTicket(viewer, auth.TicketActionView, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	msgs, err := s.messages.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return msgs, nil
}

// OpenAttachment streams a stored attachment after checking that the viewer
// can see the ticket and that the message actually carries the file.
func (s *MessageService) OpenAttachment(ctx context.Context, viewer *domain.User, ticketID, messageID int64, storedName string) (io.ReadCloser, error) {
	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !auth.AllowsTicket(viewer, auth.TicketActionView, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("message", map[string]any{"message_id": messageID})
		}
		return nil, apperrors.MapError(err)
	}
	if msg.TicketID != ticketID || !msg.HasAttachment(storedName) {
		return nil, apperrors.NewNotFound("attachment", map[string]any{"file": storedName})
	}

	rc, err := s.store.Open(ticketID, storedName)
	if err != nil {
		return nil, apperrors.NewNotFound("attachment", map[string]any{"file": storedName})
	}
	return rc, nil
}

func (s *MessageService) fetchTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *MessageService) cleanup(ticketID int64, stored []string) {
	for _, name := range stored {
		if err := s.store.Remove(ticketID, name); err != nil && s.logger != nil {
			s.logger.Warn("failed to remove orphaned attachment",
				zap.Int64("ticket_id", ticketID),
				zap.String("file", name),
				zap.Error(err))
		}
	}
}
