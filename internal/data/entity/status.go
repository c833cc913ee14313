package entity

type BookingStatus string

const (
	StatusRequested     BookingStatus = "requested"
	StatusAccepted      BookingStatus = "accepted"
	StatusDepositHeld   BookingStatus = "deposit_held"
	StatusSettled       BookingStatus = "settled"
	StatusSettledHanded BookingStatus = "settled_and_handed_over"
	StatusDelivered     BookingStatus = "delivered"
	StatusCompleted     BookingStatus = "completed"
	StatusCancelled     BookingStatus = "cancelled"
	StatusRejected      BookingStatus = "rejected"
)

// AllStatuses in lifecycle order, used by reporting queries.
var AllStatuses = []BookingStatus{
	StatusRequested,
	StatusAccepted,
	StatusDepositHeld,
	StatusSettled,
	StatusSettledHanded,
	StatusDelivered,
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}

func (s BookingStatus) Known() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Active bookings occupy their venue-day slot.
func (s BookingStatus) Active() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected:
		return false
	}
	return true
}

func (s BookingStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// postSettlement states are past the point where payment math may move the
// status again.
func (s BookingStatus) postSettlement() bool {
	switch s {
	case StatusSettled, StatusSettledHanded, StatusDelivered:
		return true
	}
	return false
}

// manualTransitions lists the status edits staff may request directly.
// Automatic payment-driven progression goes through NextForPayment instead
// and is never reachable here.
var manualTransitions = map[BookingStatus][]BookingStatus{
	StatusRequested:     {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:      {StatusRejected, StatusCancelled},
	StatusDepositHeld:   {StatusCancelled},
	StatusSettled:       {StatusSettledHanded, StatusDelivered, StatusCancelled},
	StatusSettledHanded: {StatusDelivered, StatusCancelled},
	StatusDelivered:     {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a manual status change from one state to
// another is legal. Terminal states have no outgoing edges.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range manualTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// NextForPayment evaluates the automatic transitions driven by payment
// progress. It never moves a status backward: once settled (or past it),
// later corrections to the paid sum leave the status alone.
func NextForPayment(current BookingStatus, advancePaid, totalPrice float64) BookingStatus {
	if current.Terminal() || current.postSettlement() {
		return current
	}
	if advancePaid > 0 && advancePaid >= totalPrice {
		return StatusSettled
	}
	if current == StatusAccepted && advancePaid > 0 {
		return StatusDepositHeld
	}
	return current
}
