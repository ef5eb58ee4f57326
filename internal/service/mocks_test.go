package service

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/supportdesk/helpdesk-service/internal/domain"
	"github.com/supportdesk/helpdesk-service/internal/events"
	"github.com/supportdesk/helpdesk-service/internal/repository"
)

type mockUserRepo struct {
	createFn        func(ctx context.Context, user *domain.User) error
	updateFn        func(ctx context.Context, user *domain.User) error
	deleteFn        func(ctx context.Context, id int64) error
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	firstByRoleFn   func(ctx context.Context, role domain.Role) (*domain.User, error)
	listFn          func(ctx context.Context) ([]domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, user)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.getByUsernameFn(ctx, username)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepo) FirstByRole(ctx context.Context, role domain.Role) (*domain.User, error) {
	if m.firstByRoleFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.firstByRoleFn(ctx, role)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

type mockTicketRepo struct {
	createFn        func(ctx context.Context, ticket *domain.Ticket) error
	updateFn        func(ctx context.Context, ticket *domain.Ticket) error
	getByIDFn       func(ctx context.Context, id int64) (*domain.Ticket, error)
	listFn          func(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error)
	countByStatusFn func(ctx context.Context, scope repository.TicketScope) (map[domain.StatusName]int64, error)
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	if m.createFn == nil {
		ticket.ID = 1
		return nil
	}
	return m.createFn(ctx, ticket)
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, ticket)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	if m.getByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, filter)
}

func (m *mockTicketRepo) CountByStatus(ctx context.Context, scope repository.TicketScope) (map[domain.StatusName]int64, error) {
	if m.countByStatusFn == nil {
		return map[domain.StatusName]int64{}, nil
	}
	return m.countByStatusFn(ctx, scope)
}

type mockStatusRepo struct {
	statuses map[domain.StatusName]*domain.Status
}

func newMockStatusRepo() *mockStatusRepo {
	repo := &mockStatusRepo{statuses: make(map[domain.StatusName]*domain.Status)}
	for i, def := range domain.DefaultStatuses {
		repo.statuses[def.Name] = &domain.Status{
			ID:          int64(i + 1),
			Name:        def.Name,
			Description: def.Description,
		}
	}
	return repo
}

func (m *mockStatusRepo) Create(ctx context.Context, status *domain.Status) error {
	status.ID = int64(len(m.statuses) + 1)
	m.statuses[status.Name] = status
	return nil
}

func (m *mockStatusRepo) GetByID(ctx context.Context, id int64) (*domain.Status, error) {
	for _, status := range m.statuses {
		if status.ID == id {
			return status, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockStatusRepo) GetByName(ctx context.Context, name domain.StatusName) (*domain.Status, error) {
	if status, ok := m.statuses[name]; ok {
		return status, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockStatusRepo) List(ctx context.Context) ([]domain.Status, error) {
	result := make([]domain.Status, 0, len(m.statuses))
	for _, status := range m.statuses {
		result = append(result, *status)
	}
	return result, nil
}

type mockMessageRepo struct {
	createFn       func(ctx context.Context, msg *domain.Message, statusID *int64) error
	getByIDFn      func(ctx context.Context, id int64) (*domain.Message, error)
	listByTicketFn func(ctx context.Context, ticketID int64) ([]domain.Message, error)
}

func (m *mockMessageRepo) CreateWithStatus(ctx context.Context, msg *domain.Message, statusID *int64) error {
	if m.createFn == nil {
		msg.ID = 1
		return nil
	}
	return m.createFn(ctx, msg, statusID)
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	if m.getByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockMessageRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Message, error) {
	if m.listByTicketFn == nil {
		return nil, nil
	}
	return m.listByTicketFn(ctx, ticketID)
}

type mockArticleRepo struct {
	createFn     func(ctx context.Context, article *domain.Article) error
	updateFn     func(ctx context.Context, article *domain.Article) error
	deleteFn     func(ctx context.Context, id int64) error
	getByIDFn    func(ctx context.Context, id int64) (*domain.Article, error)
	listFn       func(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error)
	categoriesFn func(ctx context.Context) ([]string, error)
	countFn      func(ctx context.Context) (int64, error)
}

func (m *mockArticleRepo) Create(ctx context.Context, article *domain.Article) error {
	if m.createFn == nil {
		article.ID = 1
		return nil
	}
	return m.createFn(ctx, article)
}

func (m *mockArticleRepo) Update(ctx context.Context, article *domain.Article) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, article)
}

func (m *mockArticleRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockArticleRepo) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	if m.getByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockArticleRepo) ListWithFilter(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, filter)
}

func (m *mockArticleRepo) Categories(ctx context.Context) ([]string, error) {
	if m.categoriesFn == nil {
		return nil, nil
	}
	return m.categoriesFn(ctx)
}

func (m *mockArticleRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn == nil {
		return 0, nil
	}
	return m.countFn(ctx)
}

type mockSessionStore struct {
	created []string
	deleted []string
	exists  bool
}

func (m *mockSessionStore) Create(ctx context.Context, sessionID string, userID int64) error {
	m.created = append(m.created, sessionID)
	return nil
}

func (m *mockSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	return m.exists, nil
}

func (m *mockSessionStore) Delete(ctx context.Context, sessionID string) error {
	m.deleted = append(m.deleted, sessionID)
	return nil
}

type mockAttachmentStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (m *mockAttachmentStore) Save(ticketID int64, filename string, r io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	stored := "stored-" + filename
	m.saved = append(m.saved, stored)
	return stored, nil
}

func (m *mockAttachmentStore) Open(ticketID int64, storedName string) (io.ReadCloser, error) {
	return io.NopCloser(nil), nil
}

func (m *mockAttachmentStore) Remove(ticketID int64, storedName string) error {
	m.removed = append(m.removed, storedName)
	return nil
}

type mockDispatcher struct {
	published []events.Event
}

func (m *mockDispatcher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

func (m *mockDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}
