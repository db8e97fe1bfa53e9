package repository

import (
	"context"
	"time"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
)

// SocietyRepository puerto de persistencia para sociedades. Delete es lógico.
type SocietyRepository interface {
	Create(ctx context.Context, society *entity.Society) error
	GetByID(ctx context.Context, id int64) (*entity.Society, error)
	GetByCode(ctx context.Context, code string) (*entity.Society, error)
	GetByCUIT(ctx context.Context, cuit string) (*entity.Society, error)
	List(ctx context.Context, params ListParams) ([]*entity.Society, int, error)
	Update(ctx context.Context, society *entity.Society) error
	Delete(ctx context.Context, id int64, at time.Time) error
}

// UserSocietyRepository puerto de persistencia para las asignaciones usuario-sociedad.
type UserSocietyRepository interface {
	Create(ctx context.Context, assignment *entity.UserSocietyAssignment) error
	GetByID(ctx context.Context, id int64) (*entity.UserSocietyAssignment, error)
	Exists(ctx context.Context, userID string, societyID int64) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.UserSocietyAssignment, error)
	ListBySociety(ctx context.Context, societyID int64) ([]*entity.UserSocietyAssignment, error)
	ListSocietiesByUser(ctx context.Context, userID string) ([]*entity.Society, error)
	Delete(ctx context.Context, id int64) error
}
