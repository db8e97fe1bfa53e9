package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
)

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

const providerColumns = "id, business_name, cuit, email, phone, sap_account_code, active, created_at, updated_at, deleted_at"

// ProviderRepo implementación del puerto ProviderRepository sobre PostgreSQL.
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador de persistencia para proveedores.
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

func scanProvider(row pgx.Row) (*entity.Provider, error) {
	var p entity.Provider
	err := row.Scan(&p.ID, &p.BusinessName, &p.CUIT, &p.Email, &p.Phone, &p.SapAccountCode,
		&p.Active, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	return &p, err
}

// Create persiste un nuevo proveedor. La CUIT es única entre los proveedores vivos.
func (r *ProviderRepo) Create(ctx context.Context, p *entity.Provider) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO providers (business_name, cuit, email, phone, sap_account_code, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		p.BusinessName, p.CUIT, p.Email, p.Phone, p.SapAccountCode, p.Active, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return mapWriteError("insert provider", err)
	}
	return nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id int64) (*entity.Provider, error) {
	return getOne(ctx, r.q, "get provider",
		`SELECT `+providerColumns+` FROM providers WHERE id = $1 AND deleted_at IS NULL`, scanProvider, id)
}

func (r *ProviderRepo) GetByCUIT(ctx context.Context, cuit string) (*entity.Provider, error) {
	return getOne(ctx, r.q, "get provider by cuit",
		`SELECT `+providerColumns+` FROM providers WHERE cuit = $1 AND deleted_at IS NULL`, scanProvider, cuit)
}

// List busca por razón social (sin acentos), CUIT exacta y estado activo.
func (r *ProviderRepo) List(ctx context.Context, f entity.ProviderFilter) ([]*entity.Provider, int, error) {
	where := providerWhere(f)
	total, err := count(ctx, r.q, psql.Select("COUNT(*)").From("providers").Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("list providers: %w", err)
	}
	query, args, err := paginate(psql.Select(providerColumns).From("providers").Where(where).
		OrderBy("business_name", "id"), f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list providers: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan provider: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func providerWhere(f entity.ProviderFilter) sq.And {
	where := sq.And{sq.Eq{"deleted_at": nil}}
	if f.CUIT != "" {
		where = append(where, sq.Eq{"cuit": f.CUIT})
	}
	if f.Active != nil {
		where = append(where, sq.Eq{"active": *f.Active})
	}
	if cond := searchCondition(f.Search, "business_name"); cond != nil {
		where = append(where, cond)
	}
	return where
}

func (r *ProviderRepo) Update(ctx context.Context, p *entity.Provider) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE providers
		SET business_name = $2, cuit = $3, email = $4, phone = $5, sap_account_code = $6, active = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL`,
		p.ID, p.BusinessName, p.CUIT, p.Email, p.Phone, p.SapAccountCode, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update provider", err)
	}
	return affectOne(tag, "proveedor", p.ID)
}

// Delete baja lógica.
func (r *ProviderRepo) Delete(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE providers SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete provider: %w", err)
	}
	return affectOne(tag, "proveedor", id)
}
