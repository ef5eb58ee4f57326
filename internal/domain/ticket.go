package domain

import "time"

// Priority enumerates ticket urgency.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Valid reports whether the priority is one of the four known values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Ticket is the aggregate for customer support requests. The customer owns
// the ticket; the agent is an assignment.
type Ticket struct {
	ID          int64
	CustomerID  int64
	AgentID     *int64
	StatusID    int64
	Title       string
	Description string
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time

	Customer *User
	Agent    *User
	Status   *Status
}

// StatusName returns the joined status name, empty when not loaded.
func (t *Ticket) StatusName() StatusName {
	if t.Status == nil {
		return ""
	}
	return t.Status.Name
}

// AssignedTo reports whether the ticket is assigned to the given user.
func (t *Ticket) AssignedTo(userID int64) bool {
	return t.AgentID != nil && *t.AgentID == userID
}
