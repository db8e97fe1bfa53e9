package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de las fechas de negocio en la API.
const DateLayout = "2006-01-02"

// CreateDocumentRequest entrada para precargar un documento.
// Note y PurchaseOrders se crean en la misma transacción que el documento.
type CreateDocumentRequest struct {
	ProviderID     int64                  `json:"provider_id" validate:"required,gt=0"`
	SocietyID      int64                  `json:"society_id" validate:"required,gt=0"`
	DocumentTypeID int64                  `json:"document_type_id" validate:"required,gt=0"`
	CurrencyID     int64                  `json:"currency_id" validate:"required,gt=0"`
	PaymentTypeID  *int64                 `json:"payment_type_id" validate:"omitempty,gt=0"`
	PointOfSale    string                 `json:"point_of_sale" validate:"required,max=5,digits"`
	Number         string                 `json:"number" validate:"required,max=8,digits"`
	IssueDate      string                 `json:"issue_date" validate:"required,datetime=2006-01-02"`
	DueDate        string                 `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Amount         decimal.Decimal        `json:"amount" swaggertype:"string"`
	Description    string                 `json:"description" validate:"max=500"`
	Note           string                 `json:"note" validate:"max=1000"`
	PurchaseOrders []PurchaseOrderRequest `json:"purchase_orders" validate:"omitempty,max=50,dive"`
}

// UpdateDocumentRequest modificación de la cabecera de un documento.
type UpdateDocumentRequest struct {
	ProviderID     int64           `json:"provider_id" validate:"required,gt=0"`
	SocietyID      int64           `json:"society_id" validate:"required,gt=0"`
	DocumentTypeID int64           `json:"document_type_id" validate:"required,gt=0"`
	CurrencyID     int64           `json:"currency_id" validate:"required,gt=0"`
	PaymentTypeID  *int64          `json:"payment_type_id" validate:"omitempty,gt=0"`
	PointOfSale    string          `json:"point_of_sale" validate:"required,max=5,digits"`
	Number         string          `json:"number" validate:"required,max=8,digits"`
	IssueDate      string          `json:"issue_date" validate:"required,datetime=2006-01-02"`
	DueDate        string          `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Amount         decimal.Decimal `json:"amount" swaggertype:"string"`
	Description    string          `json:"description" validate:"max=500"`
}

// ChangeStateRequest cambio de estado de un documento.
type ChangeStateRequest struct {
	StateID int64 `json:"state_id" validate:"required,gt=0"`
}

// DocumentListQuery filtros del listado de documentos. Fechas inclusivas.
type DocumentListQuery struct {
	ProviderID     int64  `query:"provider_id" validate:"min=0"`
	SocietyID      int64  `query:"society_id" validate:"min=0"`
	StateID        int64  `query:"state_id" validate:"min=0"`
	DocumentTypeID int64  `query:"document_type_id" validate:"min=0"`
	ProviderCUIT   string `query:"provider_cuit" validate:"omitempty,cuit"`
	Number         string `query:"number" validate:"omitempty,max=8,digits"`
	From           string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To             string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	PendingOnly    bool   `query:"pending"`
}

// DocumentResponse salida de un documento con las descripciones de sus referencias.
type DocumentResponse struct {
	ID               int64     `json:"id"`
	ProviderID       int64     `json:"provider_id"`
	ProviderName     string    `json:"provider_name"`
	ProviderCUIT     string    `json:"provider_cuit"`
	SocietyID        int64     `json:"society_id"`
	SocietyCode      string    `json:"society_code"`
	SocietyName      string    `json:"society_name"`
	DocumentTypeID   int64     `json:"document_type_id"`
	DocumentTypeCode string    `json:"document_type_code"`
	CurrencyID       int64     `json:"currency_id"`
	CurrencyCode     string    `json:"currency_code"`
	StateID          int64     `json:"state_id"`
	StateCode        string    `json:"state_code"`
	Pending          bool      `json:"pending"`
	PaymentTypeID    *int64    `json:"payment_type_id,omitempty"`
	PointOfSale      string    `json:"point_of_sale"`
	Number           string    `json:"number"`
	IssueDate        string    `json:"issue_date"`
	DueDate          string    `json:"due_date,omitempty"`
	Amount           string    `json:"amount"`
	Description      string    `json:"description"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DocumentDetailResponse documento con sus adjuntos, notas y órdenes de compra.
type DocumentDetailResponse struct {
	DocumentResponse
	Attachments    []AttachmentResponse    `json:"attachments"`
	Notes          []NoteResponse          `json:"notes"`
	PurchaseOrders []PurchaseOrderResponse `json:"purchase_orders"`
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse = ListResponse[DocumentResponse]

// PurchaseOrderRequest asociación de una posición de OC SAP a un documento.
type PurchaseOrderRequest struct {
	Number   string          `json:"number" validate:"required,max=10,digits"`
	Position string          `json:"position" validate:"required,max=5,digits"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string"`
}

// PurchaseOrderResponse salida de una OC asociada.
type PurchaseOrderResponse struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document_id"`
	Number     string    `json:"number"`
	Position   string    `json:"position"`
	Amount     string    `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// NoteRequest alta de una nota.
type NoteRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// NoteResponse salida de una nota.
type NoteResponse struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document_id"`
	Text       string    `json:"text"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// UploadAttachmentRequest metadatos del archivo recibido por multipart.
type UploadAttachmentRequest struct {
	FileName    string `validate:"required,max=255"`
	ContentType string `validate:"max=100"`
	Size        int64  `validate:"gt=0"`
}

// AttachmentResponse salida de un adjunto (sin la clave de storage).
type AttachmentResponse struct {
	ID          int64     `json:"id"`
	DocumentID  int64     `json:"document_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
