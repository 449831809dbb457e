package engine

// Outcome is the result of optimal play from the perspective of the mark
// that just moved. Lower is better for that mark: Win < Tie < Loss.
type Outcome uint8

const (
	Win Outcome = iota
	Tie
	Loss
)

// Opposite returns the outcome seen from the other side.
func (o Outcome) Opposite() Outcome {
	switch o {
	case Win:
		return Loss
	case Loss:
		return Win
	default:
		return Tie
	}
}

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Win:
		return "Win"
	case Tie:
		return "Tie"
	case Loss:
		return "Loss"
	default:
		return "Unknown"
	}
}

// ParseOutcome is the inverse of String.
func ParseOutcome(s string) (Outcome, bool) {
	switch s {
	case "Win":
		return Win, true
	case "Tie":
		return Tie, true
	case "Loss":
		return Loss, true
	}
	return Tie, false
}
