package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportdesk/helpdesk-service/internal/domain"
)

// MessageRepository manages ticket thread messages.
type MessageRepository interface {
	// CreateWithStatus inserts the message and refreshes the parent ticket
	// in one transaction. When statusID is non-nil the ticket moves to that
	// status; updated_at is bumped either way.
	CreateWithStatus(ctx context.Context, msg *domain.Message, statusID *int64) error
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

const messageSelect = `
        SELECT m.id, m.ticket_id, m.sender_id, m.content, m.attachments, m.created_at,
               u.username, u.email, u.role
        FROM messages m
        JOIN users u ON u.id = m.sender_id`

func (r *messageRepository) CreateWithStatus(ctx context.Context, msg *domain.Message, statusID *int64) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const insert = `
        INSERT INTO messages (ticket_id, sender_id, content, attachments)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insert,
			msg.TicketID,
			msg.SenderID,
			msg.Content,
			msg.Attachments,
		).Scan(&msg.ID, &msg.CreatedAt); err != nil {
			return err
		}

		const touch = `
        UPDATE tickets SET status_id=COALESCE($2, status_id), updated_at=NOW()
        WHERE id=$1`
		cmd, err := tx.Exec(ctx, touch, msg.TicketID, statusID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	return scanMessage(r.pool.QueryRow(ctx, messageSelect+` WHERE m.id=$1`, id))
}

func (r *messageRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, messageSelect+` WHERE m.ticket_id=$1 ORDER BY m.created_at ASC`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *msg)
	}
	return result, rows.Err()
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var (
		msg         domain.Message
		senderName  string
		senderEmail string
		senderRole  domain.Role
	)
	if err := row.Scan(
		&msg.ID,
		&msg.TicketID,
		&msg.SenderID,
		&msg.Content,
		&msg.Attachments,
		&msg.CreatedAt,
		&senderName,
		&senderEmail,
		&senderRole,
	); err != nil {
		return nil, err
	}
	if msg.Attachments == nil {
		msg.Attachments = []string{}
	}
	msg.Sender = &domain.User{ID: msg.SenderID, Username: senderName, Email: senderEmail, Role: senderRole}
	return &msg, nil
}
