package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder asocia una posición de orden de compra SAP a un documento.
type PurchaseOrder struct {
	ID         int64
	DocumentID int64
	Number     string
	Position   string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}
