package booking

import "time"

const (
	// Tolerância antes de marcar não comparecimento.
	NoShowGrace = time.Hour
	// Janela de antecedência do lembrete.
	ReminderWindow = 24 * time.Hour
)
