package dto

import "time"

// CurrencyRequest alta o modificación de una moneda.
type CurrencyRequest struct {
	Code        string `json:"code" validate:"required,max=3,code"`
	Description string `json:"description" validate:"required,max=100"`
	Symbol      string `json:"symbol" validate:"max=5"`
}

// CurrencyResponse salida de una moneda.
type CurrencyResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Symbol      string    `json:"symbol"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DocumentTypeRequest alta o modificación de un tipo de documento.
type DocumentTypeRequest struct {
	Code         string `json:"code" validate:"required,max=10,code"`
	Description  string `json:"description" validate:"required,max=100"`
	IsCreditNote bool   `json:"is_credit_note"`
}

// DocumentTypeResponse salida de un tipo de documento.
type DocumentTypeResponse struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"`
	Description  string    `json:"description"`
	IsCreditNote bool      `json:"is_credit_note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PaymentTypeRequest alta o modificación de un tipo de pago.
type PaymentTypeRequest struct {
	Code        string `json:"code" validate:"required,max=10,code"`
	Description string `json:"description" validate:"required,max=100"`
}

// PaymentTypeResponse salida de un tipo de pago.
type PaymentTypeResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StateRequest alta o modificación de un estado.
type StateRequest struct {
	Code        string `json:"code" validate:"required,max=10,code"`
	Description string `json:"description" validate:"required,max=100"`
	IsFinal     bool   `json:"is_final"`
}

// StateResponse salida de un estado.
type StateResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	IsFinal     bool      `json:"is_final"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CatalogListQuery búsqueda libre sobre código y descripción.
type CatalogListQuery struct {
	Search string `query:"search" validate:"max=100"`
}

// Listas paginadas de catálogos (nombres usados en la documentación Swagger).
type (
	CurrencyListResponse     = ListResponse[CurrencyResponse]
	DocumentTypeListResponse = ListResponse[DocumentTypeResponse]
	PaymentTypeListResponse  = ListResponse[PaymentTypeResponse]
	StateListResponse        = ListResponse[StateResponse]
)
