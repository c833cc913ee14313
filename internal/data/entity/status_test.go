package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveStatuses(t *testing.T) {
	active := []BookingStatus{
		StatusRequested, StatusAccepted, StatusDepositHeld,
		StatusSettled, StatusSettledHanded, StatusDelivered,
	}
	for _, s := range active {
		assert.True(t, s.Active(), "%s should occupy its slot", s)
		assert.False(t, s.Terminal(), "%s should not be terminal", s)
	}

	for _, s := range []BookingStatus{StatusCompleted, StatusCancelled, StatusRejected} {
		assert.False(t, s.Active(), "%s should free its slot", s)
		assert.True(t, s.Terminal(), "%s should be terminal", s)
	}
}

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to BookingStatus }{
		{StatusRequested, StatusAccepted},
		{StatusRequested, StatusRejected},
		{StatusRequested, StatusCancelled},
		{StatusAccepted, StatusRejected},
		{StatusAccepted, StatusCancelled},
		{StatusDepositHeld, StatusCancelled},
		{StatusSettled, StatusSettledHanded},
		{StatusSettled, StatusDelivered},
		{StatusSettledHanded, StatusDelivered},
		{StatusDelivered, StatusCompleted},
		{StatusDelivered, StatusCancelled},
	}
	for _, tc := range legal {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	illegal := []struct{ from, to BookingStatus }{
		{StatusRequested, StatusSettled},
		{StatusRequested, StatusDepositHeld},
		{StatusAccepted, StatusDelivered},
		{StatusDepositHeld, StatusRejected},
		{StatusSettled, StatusRequested},
		{StatusSettled, StatusCompleted},
		{StatusDelivered, StatusRequested},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusRequested},
		{StatusRejected, StatusAccepted},
	}
	for _, tc := range illegal {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be illegal", tc.from, tc.to)
	}
}

func TestNextForPaymentDeposit(t *testing.T) {
	// A partial payment against an accepted booking holds the deposit.
	next := NextForPayment(StatusAccepted, 200.00, 575.00)
	assert.Equal(t, StatusDepositHeld, next)
}

func TestNextForPaymentSettles(t *testing.T) {
	next := NextForPayment(StatusDepositHeld, 575.00, 575.00)
	assert.Equal(t, StatusSettled, next)

	// Overpayment settles too.
	next = NextForPayment(StatusAccepted, 600.00, 575.00)
	assert.Equal(t, StatusSettled, next)
}

func TestNextForPaymentNoMovementBeforeAcceptance(t *testing.T) {
	// Money against a requested booking does not hold a deposit; the full
	// amount still settles.
	assert.Equal(t, StatusRequested, NextForPayment(StatusRequested, 200.00, 575.00))
	assert.Equal(t, StatusSettled, NextForPayment(StatusRequested, 575.00, 575.00))
}

func TestNextForPaymentNeverMovesBackward(t *testing.T) {
	// Once settled, a shrinking paid sum leaves the status alone.
	assert.Equal(t, StatusSettled, NextForPayment(StatusSettled, 100.00, 575.00))
	assert.Equal(t, StatusSettledHanded, NextForPayment(StatusSettledHanded, 0, 575.00))
	assert.Equal(t, StatusDelivered, NextForPayment(StatusDelivered, 50.00, 575.00))
}

func TestNextForPaymentTerminalUnchanged(t *testing.T) {
	for _, s := range []BookingStatus{StatusCompleted, StatusCancelled, StatusRejected} {
		assert.Equal(t, s, NextForPayment(s, 575.00, 575.00))
	}
}

func TestNextForPaymentZeroPaid(t *testing.T) {
	// A zero-price booking with nothing paid stays put.
	assert.Equal(t, StatusAccepted, NextForPayment(StatusAccepted, 0, 0))
}
