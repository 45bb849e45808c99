package leadstore

import "origo/internal/models"

// allowedTransitions is the lifecycle guard: Draft moves to Submitted,
// Submitted resolves to Approved or Rejected, Approved can be Disbursed.
// Everything else is refused instead of being left to caller discipline.
var allowedTransitions = map[models.LeadStatus][]models.LeadStatus{
	models.StatusDraft:     {models.StatusSubmitted},
	models.StatusSubmitted: {models.StatusApproved, models.StatusRejected},
	models.StatusApproved:  {models.StatusDisbursed},
	models.StatusRejected:  {},
	models.StatusDisbursed: {},
}

// CanTransition reports whether a status change is legal. A no-op
// transition to the current status is always allowed.
func CanTransition(from, to models.LeadStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
