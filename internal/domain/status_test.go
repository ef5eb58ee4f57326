package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusNameValid(t *testing.T) {
	for _, def := range DefaultStatuses {
		assert.True(t, def.Name.Valid(), "seeded status %q must be valid", def.Name)
	}
	assert.False(t, StatusName("Sleeping").Valid())
	assert.False(t, StatusName("").Valid())
}

func TestReplyTransition(t *testing.T) {
	next, ok := ReplyTransition(RoleAgent)
	assert.True(t, ok)
	assert.Equal(t, StatusAwaitingCustomer, next)

	next, ok = ReplyTransition(RoleCustomer)
	assert.True(t, ok)
	assert.Equal(t, StatusAwaitingAgent, next)

	_, ok = ReplyTransition(RoleAdmin)
	assert.False(t, ok)
}

func TestTicketAssignedTo(t *testing.T) {
	agentID := int64(12)
	ticket := &Ticket{AgentID: &agentID}
	assert.True(t, ticket.AssignedTo(12))
	assert.False(t, ticket.AssignedTo(13))
	assert.False(t, (&Ticket{}).AssignedTo(12))
}
