package entity

import "time"

// DocumentType representa el tipo de comprobante (factura, nota de crédito, ...).
type DocumentType struct {
	ID           int64
	Code         string // único, ej. FC, NC, ND
	Description  string
	IsCreditNote bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
