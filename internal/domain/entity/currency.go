package entity

import "time"

// Currency representa una moneda habilitada para los comprobantes (ARS, USD, ...).
type Currency struct {
	ID          int64
	Code        string // código ISO, único
	Description string
	Symbol      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
