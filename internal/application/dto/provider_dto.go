package dto

import "time"

// CreateProviderRequest entrada para dar de alta un proveedor.
type CreateProviderRequest struct {
	BusinessName   string `json:"business_name" validate:"required,max=200"`
	CUIT           string `json:"cuit" validate:"required,cuit"`
	Email          string `json:"email" validate:"omitempty,email,max=150"`
	Phone          string `json:"phone" validate:"max=30"`
	SapAccountCode string `json:"sap_account_code" validate:"omitempty,max=20,code"`
	Active         *bool  `json:"active"` // nil = activo
}

// UpdateProviderRequest entrada para modificar un proveedor (reemplazo completo).
type UpdateProviderRequest struct {
	BusinessName   string `json:"business_name" validate:"required,max=200"`
	CUIT           string `json:"cuit" validate:"required,cuit"`
	Email          string `json:"email" validate:"omitempty,email,max=150"`
	Phone          string `json:"phone" validate:"max=30"`
	SapAccountCode string `json:"sap_account_code" validate:"omitempty,max=20,code"`
	Active         bool   `json:"active"`
}

// ProviderListQuery filtros del listado de proveedores.
type ProviderListQuery struct {
	Search string `query:"search" validate:"max=100"`
	CUIT   string `query:"cuit" validate:"omitempty,cuit"`
	Active *bool  `query:"active"`
}

// ProviderResponse salida de un proveedor.
type ProviderResponse struct {
	ID             int64     `json:"id"`
	BusinessName   string    `json:"business_name"`
	CUIT           string    `json:"cuit"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	SapAccountCode string    `json:"sap_account_code"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProviderListResponse lista paginada de proveedores.
type ProviderListResponse = ListResponse[ProviderResponse]
