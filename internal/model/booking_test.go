package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_Transitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{name: "waiting to approved", from: StatusWaiting, to: StatusApproved, allowed: true},
		{name: "waiting to rejected", from: StatusWaiting, to: StatusRejected, allowed: true},
		{name: "approved to rejected", from: StatusApproved, to: StatusRejected, allowed: false},
		{name: "rejected to approved", from: StatusRejected, to: StatusApproved, allowed: false},
		{name: "approved to approved", from: StatusApproved, to: StatusApproved, allowed: false},
		{name: "waiting to waiting", from: StatusWaiting, to: StatusWaiting, allowed: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.False(t, StatusWaiting.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestBookingStatus_UnknownIsTerminal(t *testing.T) {
	unknown := BookingStatus("CANCELED")
	assert.False(t, unknown.IsValid())
	assert.True(t, unknown.IsTerminal())
	assert.False(t, unknown.CanTransitionTo(StatusApproved))
}
