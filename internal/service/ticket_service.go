package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/supportdesk/helpdesk-service/internal/auth"
	"github.com/supportdesk/helpdesk-service/internal/domain"
	"github.com/supportdesk/helpdesk-service/internal/events"
	"github.com/supportdesk/helpdesk-service/internal/repository"
	apperrors "github.com/supportdesk/helpdesk-service/pkg/util"
)

// TicketService coordinates the ticket lifecycle.
type TicketService struct {
	tickets    repository.TicketRepository
	statuses   repository.StatusRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	StatusRepo repository.StatusRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		statuses:   deps.StatusRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes a new ticket.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.Priority
}

// TicketListFilter describes ticket listing filters. StatusName and
// Priority come straight from query parameters; AgentID is honored only for
// admins.
type TicketListFilter struct {
	StatusName *domain.StatusName
	Priority   *domain.Priority
	AgentID    *int64
}

// TicketStats aggregates per-status counts for a viewer.
type TicketStats struct {
	Total             int64
	PendingModeration int64
	Open              int64
	InProgress        int64
	AwaitingCustomer  int64
	AwaitingAgent     int64
	Resolved          int64
	Closed            int64
}

// Create files a ticket for a customer. The status is always forced to
// Pending Moderation regardless of the payload.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, apperrors.NewForbidden("only customers can create tickets")
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Title == "" || input.Description == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}

	pending, err := s.statuses.GetByName(ctx, domain.StatusPendingModeration)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConfigurationMissing("Pending Moderation status")
		}
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		CustomerID:  actor.ID,
		StatusID:    pending.ID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Customer = actor
	ticket.Status = pending

	company := ""
	if actor.Company != nil {
		company = actor.Company.Name
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketCreatedPayload{
			Title:         ticket.Title,
			Description:   ticket.Description,
			Priority:      ticket.Priority,
			CustomerName:  actor.Username,
			CustomerEmail: actor.Email,
			CompanyName:   company,
		},
	})
	return ticket, nil
}

// List returns tickets visible to the viewer, newest first. Customers see
// their own; agents see tickets assigned to them or unassigned; admins see
// all.
func (s *TicketService) List(ctx context.Context, viewer *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{}
	switch viewer.Role {
	case domain.RoleCustomer:
		repoFilter.CustomerID = &viewer.ID
	case domain.RoleAgent:
		repoFilter.AgentID = &viewer.ID
		repoFilter.IncludeUnassigned = true
	case domain.RoleAdmin:
		if filter.AgentID != nil {
			repoFilter.AgentID = filter.AgentID
		}
	}

	if filter.StatusName != nil {
		status, err := s.statuses.GetByName(ctx, *filter.StatusName)
		if err == nil {
			repoFilter.StatusID = &status.ID
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		// Unknown status names are ignored rather than failing the list.
	}
	if filter.Priority != nil {
		repoFilter.Priority = filter.Priority
	}

	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Get fetches one ticket, enforcing the view policy. Agents keep access to
// unassigned tickets; a ticket assigned to someone else is denied.
func (s *TicketService) Get(ctx context.Context, viewer *domain.User, id int64) (*domain.Ticket, error) {
	ticket, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.AllowsTicket(viewer, auth.TicketActionView, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// Assign gives the ticket to an agent and forces it to In Progress.
// Admin-only (enforced at the route); the target must hold the agent role.
func (s *TicketService) Assign(ctx context.Context, ticketID, agentID int64) (*domain.Ticket, error) {
	ticket, err := s.fetch(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	agent, err := s.users.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agent", map[string]any{"agent_id": agentID})
		}
		return nil, apperrors.MapError(err)
	}
	if agent.Role != domain.RoleAgent {
		return nil, apperrors.NewValidationError("user is not an agent", map[string]any{"agent_id": agentID})
	}

	ticket.AgentID = &agent.ID
	if inProgress, err := s.statuses.GetByName(ctx, domain.StatusInProgress); err == nil {
		ticket.StatusID = inProgress.ID
		ticket.Status = inProgress
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Agent = agent

	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  agent.ID,
		Payload: events.TicketAssignedPayload{
			AgentID:       agent.ID,
			AgentUsername: agent.Username,
		},
	})
	return ticket, nil
}

// UpdateStatus performs an explicit status jump. The actor must be the
// assigned agent or an admin. Closing stamps closed_at and emits the
// closing notification; any other status leaves a previous stamp untouched.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, ticketID int64, name domain.StatusName) (*domain.Ticket, error) {
	ticket, err := s.fetch(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !auth.AllowsTicket(actor, auth.TicketActionUpdateStatus, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if !name.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": name})
	}

	status, err := s.statuses.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": name})
		}
		return nil, apperrors.MapError(err)
	}

	ticket.StatusID = status.ID
	ticket.Status = status
	if name == domain.StatusClosed {
		now := time.Now()
		ticket.ClosedAt = &now
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if name == domain.StatusClosed {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketClosed,
			TicketID: ticket.ID,
			ActorID:  actor.ID,
			Payload:  events.TicketClosedPayload{Title: ticket.Title},
		})
	}
	return ticket, nil
}

// UpdatePriority changes the ticket priority. Admin-only (enforced at the
// route).
func (s *TicketService) UpdatePriority(ctx context.Context, ticketID int64, priority domain.Priority) (*domain.Ticket, error) {
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}
	ticket, err := s.fetch(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.Priority = priority
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// Stats counts tickets per status for the viewer. Agents are scoped to
// tickets assigned to them only; this is narrower than List on purpose.
func (s *TicketService) Stats(ctx context.Context, viewer *domain.User) (*TicketStats, error) {
	scope := repository.TicketScope{}
	switch viewer.Role {
	case domain.RoleCustomer:
		scope.CustomerID = &viewer.ID
	case domain.RoleAgent:
		scope.AgentID = &viewer.ID
	}

	counts, err := s.tickets.CountByStatus(ctx, scope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &TicketStats{
		PendingModeration: counts[domain.StatusPendingModeration],
		Open:              counts[domain.StatusOpen],
		InProgress:        counts[domain.StatusInProgress],
		AwaitingCustomer:  counts[domain.StatusAwaitingCustomer],
		AwaitingAgent:     counts[domain.StatusAwaitingAgent],
		Resolved:          counts[domain.StatusResolved],
		Closed:            counts[domain.StatusClosed],
	}
	for _, count := range counts {
		stats.Total += count
	}
	return stats, nil
}

func (s *TicketService) fetch(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
