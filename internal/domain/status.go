package domain

// StatusName enumerates the fixed ticket lifecycle states.
type StatusName string

const (
	StatusPendingModeration StatusName = "Pending Moderation"
	StatusOpen              StatusName = "Open"
	StatusInProgress        StatusName = "In Progress"
	StatusAwaitingCustomer  StatusName = "Awaiting Customer Reply"
	StatusAwaitingAgent     StatusName = "Awaiting Agent Reply"
	StatusResolved          StatusName = "Resolved"
	StatusClosed            StatusName = "Closed"
)

// Valid reports whether the name belongs to the registry.
func (n StatusName) Valid() bool {
	switch n {
	case StatusPendingModeration, StatusOpen, StatusInProgress,
		StatusAwaitingCustomer, StatusAwaitingAgent, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Status is a registry row backing a StatusName.
type Status struct {
	ID          int64
	Name        StatusName
	Description string
}

// DefaultStatuses is the catalog seeded on first run.
var DefaultStatuses = []Status{
	{Name: StatusPendingModeration, Description: "New ticket awaiting moderation"},
	{Name: StatusOpen, Description: "Ticket accepted and awaiting assignment"},
	{Name: StatusInProgress, Description: "An agent is working on the ticket"},
	{Name: StatusAwaitingCustomer, Description: "Waiting for the customer to reply"},
	{Name: StatusAwaitingAgent, Description: "Waiting for the agent to reply"},
	{Name: StatusResolved, Description: "Problem solved, awaiting confirmation"},
	{Name: StatusClosed, Description: "Ticket closed"},
}

// replyTransitions is the single source of truth for the automatic status
// flip applied when a message lands on a ticket. Admin replies do not move
// the ticket.
var replyTransitions = map[Role]StatusName{
	RoleAgent:    StatusAwaitingCustomer,
	RoleCustomer: StatusAwaitingAgent,
}

// ReplyTransition returns the status a ticket moves to when a user with the
// given role posts a message, and whether such a transition exists.
func ReplyTransition(sender Role) (StatusName, bool) {
	next, ok := replyTransitions[sender]
	return next, ok
}
