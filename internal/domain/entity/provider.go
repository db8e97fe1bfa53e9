package entity

import "time"

// Provider representa un proveedor que emite comprobantes a las sociedades.
type Provider struct {
	ID             int64
	BusinessName   string
	CUIT           string // solo dígitos
	Email          string
	Phone          string
	SapAccountCode string // cuenta acreedora en SAP; vacío si aún no fue dada de alta
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
