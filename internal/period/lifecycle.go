package period

// validTransitions encodes the period lifecycle:
//
//	DRAFT -> CALCULATED -> APPROVED -> PAID
//
// CALCULATED loops on itself because a period may be recomputed any number
// of times before approval. PAID is terminal.
var validTransitions = map[string][]string{
	StatusDraft:      {StatusCalculated},
	StatusCalculated: {StatusCalculated, StatusApproved},
	StatusApproved:   {StatusPaid},
	StatusPaid:       {},
}

func ValidStatus(s string) bool {
	_, ok := validTransitions[s]
	return ok
}

func CanTransition(from, to string) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCompute reports whether a period in the given status may be
// (re)computed. Approved and paid periods are locked.
func CanCompute(status string) bool {
	return status == StatusDraft || status == StatusCalculated
}

// CanDelete mirrors CanCompute: once approved, a period is part of the
// payment record and can no longer be removed.
func CanDelete(status string) bool {
	return status == StatusDraft || status == StatusCalculated
}
