package adoptions

// transitions: pending es el único estado con salidas; approved y rejected son terminales.
var transitions = map[Status][]Status{
	StatusPending: {StatusApproved, StatusRejected},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(s Status) bool {
	return s.Valid() && len(transitions[s]) == 0
}
