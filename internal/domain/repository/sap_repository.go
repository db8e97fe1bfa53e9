package repository

import (
	"context"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
)

// SapAccountRepository lectura de las cuentas espejadas desde SAP.
type SapAccountRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.SapAccount, error)
	List(ctx context.Context, filter entity.SapAccountFilter) ([]*entity.SapAccount, int, error)
}

// SapPurchaseOrderRepository lectura de las órdenes de compra espejadas desde SAP.
type SapPurchaseOrderRepository interface {
	GetByNumber(ctx context.Context, number string) ([]*entity.SapPurchaseOrder, error)
	GetPosition(ctx context.Context, number, position string) (*entity.SapPurchaseOrder, error)
	List(ctx context.Context, filter entity.SapPurchaseOrderFilter) ([]*entity.SapPurchaseOrder, int, error)
}
