package repository

import (
	"context"
	"time"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
)

// ProviderRepository puerto de persistencia para proveedores. Delete es lógico.
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByID(ctx context.Context, id int64) (*entity.Provider, error)
	GetByCUIT(ctx context.Context, cuit string) (*entity.Provider, error)
	List(ctx context.Context, filter entity.ProviderFilter) ([]*entity.Provider, int, error)
	Update(ctx context.Context, provider *entity.Provider) error
	Delete(ctx context.Context, id int64, at time.Time) error
}
