package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
)

var (
	_ repository.SapAccountRepository       = (*SapAccountRepo)(nil)
	_ repository.SapPurchaseOrderRepository = (*SapPurchaseOrderRepo)(nil)
)

const sapAccountColumns = "code, description, society_code, cuit, blocked, synced_at"

// SapAccountRepo lectura del espejo de cuentas SAP.
type SapAccountRepo struct {
	q Querier
}

// NewSapAccountRepository construye el adaptador de lectura.
func NewSapAccountRepository(q Querier) *SapAccountRepo {
	return &SapAccountRepo{q: q}
}

func scanSapAccount(row pgx.Row) (*entity.SapAccount, error) {
	var a entity.SapAccount
	err := row.Scan(&a.Code, &a.Description, &a.SocietyCode, &a.CUIT, &a.Blocked, &a.SyncedAt)
	return &a, err
}

func (r *SapAccountRepo) GetByCode(ctx context.Context, code string) (*entity.SapAccount, error) {
	return getOne(ctx, r.q, "get sap account",
		`SELECT `+sapAccountColumns+` FROM sap_accounts WHERE code = $1`, scanSapAccount, code)
}

func (r *SapAccountRepo) List(ctx context.Context, f entity.SapAccountFilter) ([]*entity.SapAccount, int, error) {
	where := sapAccountWhere(f)
	total, err := count(ctx, r.q, psql.Select("COUNT(*)").From("sap_accounts").Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("list sap accounts: %w", err)
	}
	query, args, err := paginate(psql.Select(sapAccountColumns).From("sap_accounts").Where(where).OrderBy("code"), f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list sap accounts: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sap accounts: %w", err)
	}
	defer rows.Close()
	var out []*entity.SapAccount
	for rows.Next() {
		a, err := scanSapAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sap account: %w", err)
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func sapAccountWhere(f entity.SapAccountFilter) sq.And {
	where := sq.And{}
	if f.SocietyCode != "" {
		where = append(where, sq.Eq{"society_code": f.SocietyCode})
	}
	if cond := searchCondition(f.Search, "code", "description", "cuit"); cond != nil {
		where = append(where, cond)
	}
	return where
}

// ─── Órdenes de compra SAP ──────────────────────────────────────────────────

const sapPurchaseOrderColumns = "number, position, society_code, provider_cuit, issue_date, amount, currency_code, description, synced_at"

// SapPurchaseOrderRepo lectura del espejo de órdenes de compra SAP.
type SapPurchaseOrderRepo struct {
	q Querier
}

// NewSapPurchaseOrderRepository construye el adaptador de lectura.
func NewSapPurchaseOrderRepository(q Querier) *SapPurchaseOrderRepo {
	return &SapPurchaseOrderRepo{q: q}
}

func scanSapPurchaseOrder(row pgx.Row) (*entity.SapPurchaseOrder, error) {
	var po entity.SapPurchaseOrder
	err := row.Scan(&po.Number, &po.Position, &po.SocietyCode, &po.ProviderCUIT, &po.IssueDate,
		&po.Amount, &po.CurrencyCode, &po.Description, &po.SyncedAt)
	return &po, err
}

func (r *SapPurchaseOrderRepo) GetByNumber(ctx context.Context, number string) ([]*entity.SapPurchaseOrder, error) {
	return r.query(ctx,
		`SELECT `+sapPurchaseOrderColumns+` FROM sap_purchase_orders WHERE number = $1 ORDER BY position`, number)
}

func (r *SapPurchaseOrderRepo) GetPosition(ctx context.Context, number, position string) (*entity.SapPurchaseOrder, error) {
	return getOne(ctx, r.q, "get sap purchase order position",
		`SELECT `+sapPurchaseOrderColumns+` FROM sap_purchase_orders WHERE number = $1 AND position = $2`,
		scanSapPurchaseOrder, number, position)
}

func (r *SapPurchaseOrderRepo) List(ctx context.Context, f entity.SapPurchaseOrderFilter) ([]*entity.SapPurchaseOrder, int, error) {
	where := sapPurchaseOrderWhere(f)
	total, err := count(ctx, r.q, psql.Select("COUNT(*)").From("sap_purchase_orders").Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("list sap purchase orders: %w", err)
	}
	query, args, err := paginate(psql.Select(sapPurchaseOrderColumns).From("sap_purchase_orders").Where(where).
		OrderBy("issue_date DESC", "number", "position"), f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list sap purchase orders: %w", err)
	}
	out, err := r.query(ctx, query, args...)
	return out, total, err
}

func sapPurchaseOrderWhere(f entity.SapPurchaseOrderFilter) sq.And {
	where := sq.And{}
	if f.ProviderCUIT != "" {
		where = append(where, sq.Eq{"provider_cuit": f.ProviderCUIT})
	}
	if f.SocietyCode != "" {
		where = append(where, sq.Eq{"society_code": f.SocietyCode})
	}
	if f.IssuedFrom != nil {
		where = append(where, sq.GtOrEq{"issue_date": *f.IssuedFrom})
	}
	if f.IssuedTo != nil {
		where = append(where, sq.LtOrEq{"issue_date": *f.IssuedTo})
	}
	return where
}

func (r *SapPurchaseOrderRepo) query(ctx context.Context, query string, args ...any) ([]*entity.SapPurchaseOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sap purchase orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.SapPurchaseOrder
	for rows.Next() {
		po, err := scanSapPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sap purchase order: %w", err)
		}
		out = append(out, po)
	}
	return out, rows.Err()
}
