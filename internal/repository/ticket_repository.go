package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportdesk/helpdesk-service/internal/domain"
)

// TicketFilter captures list parameters. When AgentID is set together with
// IncludeUnassigned, the filter matches tickets assigned to that agent or
// assigned to nobody (agent list visibility).
type TicketFilter struct {
	CustomerID        *int64
	AgentID           *int64
	IncludeUnassigned bool
	StatusID          *int64
	Priority          *domain.Priority
}

// TicketScope restricts stats counting to one viewer's tickets.
type TicketScope struct {
	CustomerID *int64
	AgentID    *int64
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context, scope TicketScope) (map[domain.StatusName]int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketSelect = `
        SELECT t.id, t.customer_id, t.agent_id, t.status_id, t.title, t.description,
               t.priority, t.created_at, t.updated_at, t.closed_at,
               cu.username, cu.email, cu.role,
               ag.username, ag.email, ag.role,
               s.name, s.description,
               co.id, co.name
        FROM tickets t
        JOIN users cu ON cu.id = t.customer_id
        LEFT JOIN users ag ON ag.id = t.agent_id
        JOIN statuses s ON s.id = t.status_id
        LEFT JOIN companies co ON co.id = cu.company_id`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (customer_id, agent_id, status_id, title, description, priority)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.CustomerID,
		ticket.AgentID,
		ticket.StatusID,
		ticket.Title,
		ticket.Description,
		ticket.Priority,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET agent_id=$1, status_id=$2, title=$3, description=$4,
            priority=$5, closed_at=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.AgentID,
		ticket.StatusID,
		ticket.Title,
		ticket.Description,
		ticket.Priority,
		ticket.ClosedAt,
		ticket.ID,
	).Scan(&ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	row := r.pool.QueryRow(ctx, ticketSelect+` WHERE t.id=$1`, id)
	return scanTicket(row)
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("t.customer_id=$%d", len(args)))
	}
	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		if filter.IncludeUnassigned {
			clauses = append(clauses, fmt.Sprintf("(t.agent_id=$%d OR t.agent_id IS NULL)", len(args)))
		} else {
			clauses = append(clauses, fmt.Sprintf("t.agent_id=$%d", len(args)))
		}
	}
	if filter.StatusID != nil {
		args = append(args, *filter.StatusID)
		clauses = append(clauses, fmt.Sprintf("t.status_id=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("t.priority=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY t.created_at DESC",
		ticketSelect, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) CountByStatus(ctx context.Context, scope TicketScope) (map[domain.StatusName]int64, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if scope.CustomerID != nil {
		args = append(args, *scope.CustomerID)
		clauses = append(clauses, fmt.Sprintf("t.customer_id=$%d", len(args)))
	}
	if scope.AgentID != nil {
		args = append(args, *scope.AgentID)
		clauses = append(clauses, fmt.Sprintf("t.agent_id=$%d", len(args)))
	}

	query := fmt.Sprintf(`
        SELECT s.name, COUNT(t.id)
        FROM tickets t JOIN statuses s ON s.id = t.status_id
        WHERE %s GROUP BY s.name`, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.StatusName]int64)
	for rows.Next() {
		var name domain.StatusName
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		counts[name] = count
	}
	return counts, rows.Err()
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket     domain.Ticket
		custName   string
		custEmail  string
		custRole   domain.Role
		agentName  *string
		agentEmail *string
		agentRole  *domain.Role
		statusName domain.StatusName
		statusDesc string
		companyID  *int64
		company    *string
	)
	if err := row.Scan(
		&ticket.ID,
		&ticket.CustomerID,
		&ticket.AgentID,
		&ticket.StatusID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Priority,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ClosedAt,
		&custName,
		&custEmail,
		&custRole,
		&agentName,
		&agentEmail,
		&agentRole,
		&statusName,
		&statusDesc,
		&companyID,
		&company,
	); err != nil {
		return nil, err
	}

	ticket.Customer = &domain.User{ID: ticket.CustomerID, Username: custName, Email: custEmail, Role: custRole, CompanyID: companyID}
	if companyID != nil && company != nil {
		ticket.Customer.Company = &domain.Company{ID: *companyID, Name: *company}
	}
	if ticket.AgentID != nil && agentName != nil {
		ticket.Agent = &domain.User{ID: *ticket.AgentID, Username: *agentName, Role: domain.RoleAgent}
		if agentEmail != nil {
			ticket.Agent.Email = *agentEmail
		}
		if agentRole != nil {
			ticket.Agent.Role = *agentRole
		}
	}
	ticket.Status = &domain.Status{ID: ticket.StatusID, Name: statusName, Description: statusDesc}
	return &ticket, nil
}
