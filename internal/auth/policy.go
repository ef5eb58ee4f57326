package auth

import "github.com/supportdesk/helpdesk-service/internal/domain"

// TicketAction names an operation a user may attempt on a ticket.
type TicketAction string

const (
	// TicketActionView covers reading a ticket, its thread and attachments.
	TicketActionView TicketAction = "view"
	// TicketActionMessage covers posting into the thread.
	TicketActionMessage TicketAction = "message"
	// TicketActionUpdateStatus covers explicit status changes.
	TicketActionUpdateStatus TicketAction = "update_status"
)

// AllowsTicket is the single ticket-scoped access predicate, keyed by
// (role, action, ownership).
//
// Customers act only on tickets they filed. Agents may view tickets that are
// theirs or still unassigned, but mutations require the assignment. Admins
// may do anything.
func AllowsTicket(user *domain.User, action TicketAction, ticket *domain.Ticket) bool {
	if user == nil || ticket == nil {
		return false
	}
	switch user.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleCustomer:
		return ticket.CustomerID == user.ID
	case domain.RoleAgent:
		if action == TicketActionView {
			return ticket.AgentID == nil || ticket.AssignedTo(user.ID)
		}
		return ticket.AssignedTo(user.ID)
	}
	return false
}
