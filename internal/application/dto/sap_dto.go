package dto

import "time"

// SapAccountQuery filtros del listado de cuentas SAP.
type SapAccountQuery struct {
	SocietyCode string `query:"society_code" validate:"omitempty,max=10,code"`
	Search      string `query:"search" validate:"max=100"`
}

// SapAccountResponse salida de una cuenta SAP.
type SapAccountResponse struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	SocietyCode string    `json:"society_code"`
	CUIT        string    `json:"cuit"`
	Blocked     bool      `json:"blocked"`
	SyncedAt    time.Time `json:"synced_at"`
}

// SapAccountListResponse lista paginada de cuentas SAP.
type SapAccountListResponse = ListResponse[SapAccountResponse]

// SapPurchaseOrderQuery búsqueda de órdenes de compra SAP de un proveedor.
type SapPurchaseOrderQuery struct {
	ProviderCUIT string `query:"provider_cuit" validate:"required,cuit"`
	SocietyCode  string `query:"society_code" validate:"omitempty,max=10,code"`
	From         string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To           string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// SapPurchaseOrderResponse salida de una posición de OC SAP.
type SapPurchaseOrderResponse struct {
	Number       string    `json:"number"`
	Position     string    `json:"position"`
	SocietyCode  string    `json:"society_code"`
	ProviderCUIT string    `json:"provider_cuit"`
	IssueDate    string    `json:"issue_date"`
	Amount       string    `json:"amount"`
	CurrencyCode string    `json:"currency_code"`
	Description  string    `json:"description"`
	SyncedAt     time.Time `json:"synced_at"`
}

// SapPurchaseOrderListResponse lista paginada de posiciones de OC SAP.
type SapPurchaseOrderListResponse = ListResponse[SapPurchaseOrderResponse]
