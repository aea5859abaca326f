package lead

import "time"

// LeadStatus is the sales pipeline stage of a lead.
type LeadStatus string

const (
	StatusNew       LeadStatus = "new"
	StatusContacted LeadStatus = "contacted"
	StatusQualified LeadStatus = "qualified"
	StatusWon       LeadStatus = "won"
	StatusLost      LeadStatus = "lost"
)

// validTransitions encodes the allowed pipeline moves. "lost" is reachable
// from any non-terminal stage.
var validTransitions = map[LeadStatus][]LeadStatus{
	StatusNew:       {StatusContacted, StatusLost},
	StatusContacted: {StatusQualified, StatusLost},
	StatusQualified: {StatusWon, StatusLost},
}

// CanTransition reports whether a status change is a legal pipeline move.
func CanTransition(from, to LeadStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Lead struct {
	ID             string
	Name           string
	Company        *string
	Email          *string
	Phone          *string
	Source         *string
	Status         LeadStatus
	AssignedTo     *string // employee id of the owning sales rep
	EstimatedValue *float64
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO / Join
	AssignedToName *string
}
