package entity

import "time"

// StateCodePending es el estado inicial de todo documento precargado. No puede renombrarse ni eliminarse.
const StateCodePending = "PEN"

// State representa el estado de un documento dentro del circuito de precarga.
type State struct {
	ID          int64
	Code        string
	Description string
	IsFinal     bool // un documento en estado final ya no está pendiente ni cambia de estado
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsReserved informa si el estado es utilizado internamente por el sistema.
func (s *State) IsReserved() bool {
	return s != nil && s.Code == StateCodePending
}
