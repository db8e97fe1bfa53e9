package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SapAccount cuenta espejada desde SAP (solo lectura).
type SapAccount struct {
	Code        string
	Description string
	SocietyCode string
	CUIT        string
	Blocked     bool
	SyncedAt    time.Time
}

// SapPurchaseOrder posición de orden de compra espejada desde SAP (solo lectura).
type SapPurchaseOrder struct {
	Number       string
	Position     string
	SocietyCode  string
	ProviderCUIT string
	IssueDate    time.Time
	Amount       decimal.Decimal
	CurrencyCode string
	Description  string
	SyncedAt     time.Time
}

// SapPurchaseOrderFilter criterios de búsqueda de órdenes de compra SAP.
type SapPurchaseOrderFilter struct {
	ProviderCUIT string
	SocietyCode  string
	IssuedFrom   *time.Time
	IssuedTo     *time.Time
	Limit        int
	Offset       int
}
