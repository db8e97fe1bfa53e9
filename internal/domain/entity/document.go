package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document representa un comprobante (factura, nota de crédito) precargado a la espera de su
// procesamiento en SAP.
type Document struct {
	ID             int64
	ProviderID     int64
	SocietyID      int64
	DocumentTypeID int64
	CurrencyID     int64
	StateID        int64
	PaymentTypeID  *int64
	PointOfSale    string
	Number         string
	IssueDate      time.Time
	DueDate        *time.Time
	Amount         decimal.Decimal
	Description    string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// DocumentDetail es la vista de lectura de un documento con las descripciones de sus referencias.
type DocumentDetail struct {
	Document
	ProviderName     string
	ProviderCUIT     string
	SocietyCode      string
	SocietyName      string
	DocumentTypeCode string
	CurrencyCode     string
	StateCode        string
	StateFinal       bool
}

// DocumentFilter criterios de búsqueda de documentos. Los campos cero no filtran.
type DocumentFilter struct {
	ProviderID     int64
	SocietyID      int64
	StateID        int64
	DocumentTypeID int64
	ProviderCUIT   string
	Number         string
	IssuedFrom     *time.Time
	IssuedTo       *time.Time
	PendingOnly    bool
	Limit          int
	Offset         int
}
