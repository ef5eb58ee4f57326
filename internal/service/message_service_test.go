package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk/helpdesk-service/internal/domain"
	apperrors "github.com/supportdesk/helpdesk-service/pkg/util"
)

func newMessageService(messages *mockMessageRepo, tickets *mockTicketRepo, store *mockAttachmentStore) *MessageService {
	return NewMessageService(MessageDependencies{
		MessageRepo: messages,
		TicketRepo:  tickets,
		StatusRepo:  newMockStatusRepo(),
		Store:       store,
		MaxBytes:    5 * 1024 * 1024,
	})
}

func ticketRepoWith(ticket *domain.Ticket) *mockTicketRepo {
	return &mockTicketRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Ticket, error) {
			copy := *ticket
			copy.ID = id
			return &copy, nil
		},
	}
}

func upload(name string, size int64) AttachmentUpload {
	return AttachmentUpload{FileName: name, Size: size, Content: strings.NewReader("data")}
}

func TestMessagePostAgentReplyMovesToAwaitingCustomer(t *testing.T) {
	agentID := int64(12)
	var capturedStatus *int64
	messages := &mockMessageRepo{
		createFn: func(ctx context.Context, msg *domain.Message, statusID *int64) error {
			msg.ID = 1
			capturedStatus = statusID
			return nil
		},
	}
	svc := newMessageService(messages, ticketRepoWith(&domain.Ticket{CustomerID: 5, AgentID: &agentID}), &mockAttachmentStore{})

	msg, err := svc.Post(context.Background(), agent(agentID), 1, "working on it", nil)
	require.NoError(t, err)
	assert.Equal(t, "working on it", msg.Content)

	statuses := newMockStatusRepo()
	awaiting, _ := statuses.GetByName(context.Background(), domain.StatusAwaitingCustomer)
	require.NotNil(t, capturedStatus)
	assert.Equal(t, awaiting.ID, *capturedStatus)
}

func TestMessagePostCustomerReplyMovesToAwaitingAgent(t *testing.T) {
	var capturedStatus *int64
	messages := &mockMessageRepo{
		createFn: func(ctx context.Context, msg *domain.Message, statusID *int64) error {
			capturedStatus = statusID
			return nil
		},
	}
	svc := newMessageService(messages, ticketRepoWith(&domain.Ticket{CustomerID: 5}), &mockAttachmentStore{})

	_, err := svc.Post(context.Background(), customer(5), 1, "still broken", nil)
	require.NoError(t, err)

	statuses := newMockStatusRepo()
	awaiting, _ := statuses.GetByName(context.Background(), domain.StatusAwaitingAgent)
	require.NotNil(t, capturedStatus)
	assert.Equal(t, awaiting.ID, *capturedStatus)
}

func TestMessagePostAdminReplyLeavesStatusAlone(t *testing.T) {
	var capturedStatus *int64
	called := false
	messages := &mockMessageRepo{
		createFn: func(ctx context.Context, msg *domain.Message, statusID *int64) error {
			called = true
			capturedStatus = statusID
			return nil
		},
	}
	svc := newMessageService(messages, ticketRepoWith(&domain.Ticket{CustomerID: 5}), &mockAttachmentStore{})

	_, err := svc.Post(context.Background(), admin(3), 1, "noted", nil)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Nil(t, capturedStatus)
}

func TestMessagePostRejectsEmptyContent(t *testing.T) {
	svc := newMessageService(&mockMessageRepo{}, ticketRepoWith(&domain.Ticket{CustomerID: 5}), &mockAttachmentStore{})

	_, err := svc.Post(context.Background(), customer(5), 1, "   ", nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestMessagePostRejectsUnassignedAgent(t *testing.T) {
	svc := newMessageService(&mockMessageRepo{}, ticketRepoWith(&domain.Ticket{CustomerID: 5}), &mockAttachmentStore{})

	_, err := svc.Post(context.Background(), agent(12), 1, "hello", nil)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestMessagePostRejectsAllOffendingAttachments(t *testing.T) {
	store := &mockAttachmentStore{}
	svc := newMessageService(&mockMessageRepo{}, ticketRepoWith(&domain.Ticket{CustomerID: 5}), store)

	_, err := svc.Post(context.Background(), customer(5), 1, "see attached", []AttachmentUpload{
		upload("notes.txt", 100),
		upload("malware.exe", 100),
		upload("huge.pdf", 50*1024*1024),
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "ATTACHMENT_REJECTED", domainErr.Code)
	files, ok := domainErr.Details["files"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"malware.exe", "huge.pdf"}, files)
	assert.Empty(t, store.saved, "nothing may be stored when any file is rejected")
}

func TestMessagePostAcceptsAllowedExtensions(t *testing.T) {
	store := &mockAttachmentStore{}
	svc := newMessageService(&mockMessageRepo{}, ticketRepoWith(&domain.Ticket{CustomerID: 5}), store)

	msg, err := svc.Post(context.Background(), customer(5), 1, "screenshots", []AttachmentUpload{
		upload("shot.PNG", 100),
		upload("report.pdf", 100),
	})
	require.NoError(t, err)
	assert.Len(t, msg.Attachments, 2)
	assert.Len(t, store.saved, 2)
}

func TestMessagePostRemovesFilesWhenInsertFails(t *testing.T) {
	store := &mockAttachmentStore{}
	messages := &mockMessageRepo{
		createFn: func(ctx context.Context, msg *domain.Message, statusID *int64) error {
			return assert.AnError
		},
	}
	svc := newMessageService(messages, ticketRepoWith(&domain.Ticket{CustomerID: 5}), store)

	_, err := svc.Post(context.Background(), customer(5), 1, "see attached", []AttachmentUpload{
		upload("notes.txt", 100),
	})
	require.Error(t, err)
	assert.Equal(t, store.saved, store.removed)
}

func TestMessageListEnforcesViewPolicy(t *testing.T) {
	svc := newMessageService(&mockMessageRepo{}, ticketRepoWith(&domain.Ticket{CustomerID: 5}), &mockAttachmentStore{})

	_, err := svc.List(context.Background(), customer(6), 1)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	_, err = svc.List(context.Background(), customer(5), 1)
	assert.NoError(t, err)
}

func TestOpenAttachmentRejectsForeignMessage(t *testing.T) {
	messages := &mockMessageRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Message, error) {
			return &domain.Message{ID: id, TicketID: 99, Attachments: []string{"file.txt"}}, nil
		},
	}
	svc := newMessageService(messages, ticketRepoWith(&domain.Ticket{CustomerID: 5}), &mockAttachmentStore{})

	_, err := svc.OpenAttachment(context.Background(), customer(5), 1, 10, "file.txt")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestOpenAttachmentRejectsUnknownFile(t *testing.T) {
	messages := &mockMessageRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Message, error) {
			return &domain.Message{ID: id, TicketID: 1, Attachments: []string{"other.txt"}}, nil
		},
	}
	svc := newMessageService(messages, ticketRepoWith(&domain.Ticket{CustomerID: 5}), &mockAttachmentStore{})

	_, err := svc.OpenAttachment(context.Background(), customer(5), 1, 10, "file.txt")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
