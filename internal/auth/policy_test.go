package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supportdesk/helpdesk-service/internal/domain"
)

func TestAllowsTicket(t *testing.T) {
	agentID := int64(12)
	assigned := &domain.Ticket{ID: 1, CustomerID: 5, AgentID: &agentID}
	unassigned := &domain.Ticket{ID: 2, CustomerID: 5}

	tests := []struct {
		name   string
		user   *domain.User
		action TicketAction
		ticket *domain.Ticket
		want   bool
	}{
		{"admin views anything", &domain.User{ID: 1, Role: domain.RoleAdmin}, TicketActionView, assigned, true},
		{"admin mutates anything", &domain.User{ID: 1, Role: domain.RoleAdmin}, TicketActionUpdateStatus, unassigned, true},

		{"customer views own ticket", &domain.User{ID: 5, Role: domain.RoleCustomer}, TicketActionView, assigned, true},
		{"customer messages own ticket", &domain.User{ID: 5, Role: domain.RoleCustomer}, TicketActionMessage, assigned, true},
		{"customer denied foreign ticket", &domain.User{ID: 6, Role: domain.RoleCustomer}, TicketActionView, assigned, false},

		{"agent views assigned ticket", &domain.User{ID: 12, Role: domain.RoleAgent}, TicketActionView, assigned, true},
		{"agent views unassigned ticket", &domain.User{ID: 13, Role: domain.RoleAgent}, TicketActionView, unassigned, true},
		{"agent denied view of foreign assignment", &domain.User{ID: 13, Role: domain.RoleAgent}, TicketActionView, assigned, false},
		{"agent messages assigned ticket", &domain.User{ID: 12, Role: domain.RoleAgent}, TicketActionMessage, assigned, true},
		{"agent cannot message unassigned ticket", &domain.User{ID: 12, Role: domain.RoleAgent}, TicketActionMessage, unassigned, false},
		{"agent cannot change status of unassigned ticket", &domain.User{ID: 12, Role: domain.RoleAgent}, TicketActionUpdateStatus, unassigned, false},

		{"nil user denied", nil, TicketActionView, assigned, false},
		{"unknown role denied", &domain.User{ID: 1, Role: domain.Role("intern")}, TicketActionView, unassigned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowsTicket(tt.user, tt.action, tt.ticket))
		})
	}
}

func TestAllowsTicketNilTicket(t *testing.T) {
	assert.False(t, AllowsTicket(&domain.User{ID: 1, Role: domain.RoleAdmin}, TicketActionView, nil))
}
