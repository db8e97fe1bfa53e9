package repository

import (
	"context"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
)

// CurrencyRepository puerto de persistencia para monedas.
type CurrencyRepository interface {
	Create(ctx context.Context, currency *entity.Currency) error
	GetByID(ctx context.Context, id int64) (*entity.Currency, error)
	GetByCode(ctx context.Context, code string) (*entity.Currency, error)
	List(ctx context.Context, params ListParams) ([]*entity.Currency, int, error)
	Update(ctx context.Context, currency *entity.Currency) error
	Delete(ctx context.Context, id int64) error
}

// DocumentTypeRepository puerto de persistencia para tipos de documento.
type DocumentTypeRepository interface {
	Create(ctx context.Context, documentType *entity.DocumentType) error
	GetByID(ctx context.Context, id int64) (*entity.DocumentType, error)
	GetByCode(ctx context.Context, code string) (*entity.DocumentType, error)
	List(ctx context.Context, params ListParams) ([]*entity.DocumentType, int, error)
	Update(ctx context.Context, documentType *entity.DocumentType) error
	Delete(ctx context.Context, id int64) error
}

// PaymentTypeRepository puerto de persistencia para tipos de pago.
type PaymentTypeRepository interface {
	Create(ctx context.Context, paymentType *entity.PaymentType) error
	GetByID(ctx context.Context, id int64) (*entity.PaymentType, error)
	GetByCode(ctx context.Context, code string) (*entity.PaymentType, error)
	List(ctx context.Context, params ListParams) ([]*entity.PaymentType, int, error)
	Update(ctx context.Context, paymentType *entity.PaymentType) error
	Delete(ctx context.Context, id int64) error
}

// StateRepository puerto de persistencia para estados de documento.
type StateRepository interface {
	Create(ctx context.Context, state *entity.State) error
	GetByID(ctx context.Context, id int64) (*entity.State, error)
	GetByCode(ctx context.Context, code string) (*entity.State, error)
	List(ctx context.Context, params ListParams) ([]*entity.State, int, error)
	Update(ctx context.Context, state *entity.State) error
	Delete(ctx context.Context, id int64) error
}
