package usecase

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// BlobStore guarda el contenido de los adjuntos. Open devuelve un error que envuelve
// domain.ErrNotFound cuando la clave no existe.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// VoucherGenerator genera la constancia imprimible (PDF) de un documento precargado.
type VoucherGenerator interface {
	GenerateVoucher(ctx context.Context, v *Voucher) ([]byte, error)
}

// Voucher datos que se imprimen en la constancia de precarga.
type Voucher struct {
	DocumentID     int64
	DocumentType   string
	PointOfSale    string
	Number         string
	IssueDate      time.Time
	DueDate        *time.Time
	Amount         decimal.Decimal
	CurrencyCode   string
	StateCode      string
	Description    string
	ProviderName   string
	ProviderCUIT   string
	SocietyCode    string
	SocietyName    string
	CreatedBy      string
	CreatedAt      time.Time
	PurchaseOrders []VoucherPurchaseOrder
	Notes          []string
}

// VoucherPurchaseOrder línea de OC impresa en la constancia.
type VoucherPurchaseOrder struct {
	Number   string
	Position string
	Amount   decimal.Decimal
}
