package transaction

import (
	"fmt"
	"time"
)

// Mode is the means of payment.
type Mode string

const (
	ModeCash Mode = "cash"
	ModeCard Mode = "card"
	ModeUPI  Mode = "upi"
)

// ParseMode validates a wire value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCash, ModeCard, ModeUPI:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q", s)
	}
}

// Direction distinguishes money flowing into or out of the project.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// ParseDirection validates a wire value into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionIncoming, DirectionOutgoing:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("invalid direction %q", s)
	}
}

// Transaction is one recorded money movement inside a project. Amount is in
// minor currency units. AddedBy and ProjectID are always set server-side from
// the caller identity and route target, never trusted from the body.
type Transaction struct {
	ID          string
	Amount      int64
	Mode        Mode
	Direction   Direction
	Description string
	OccurredAt  time.Time
	AddedBy     string
	PaidBy      string
	ProjectID   string
}
