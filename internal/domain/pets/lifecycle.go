package pets

// Una mascota solo avanza hacia adopted (por la aprobación de una solicitud).
// Repetir el estado actual no es una transición y siempre se acepta.
var transitions = map[Status][]Status{
	StatusAvailable: {StatusAdopted},
	StatusPending:   {StatusAdopted},
}

func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
