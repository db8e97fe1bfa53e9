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
	_ repository.CurrencyRepository     = (*CurrencyRepo)(nil)
	_ repository.DocumentTypeRepository = (*DocumentTypeRepo)(nil)
	_ repository.PaymentTypeRepository  = (*PaymentTypeRepo)(nil)
	_ repository.StateRepository        = (*StateRepo)(nil)
)

// listCatalog pagina un catálogo ordenado por código, con búsqueda sobre código y descripción.
func listCatalog[T any](ctx context.Context, q Querier, table, cols string, p repository.ListParams, scan func(pgx.Row) (*T, error)) ([]*T, int, error) {
	where := sq.And{}
	if cond := searchCondition(p.Search, "code", "description"); cond != nil {
		where = append(where, cond)
	}
	total, err := count(ctx, q, psql.Select("COUNT(*)").From(table).Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}
	query, args, err := paginate(psql.Select(cols).From(table).Where(where).OrderBy("code"), p.Limit, p.Offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list %s: %w", table, err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	var out []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

// getOne ejecuta una consulta de una fila; (nil, nil) si no hay resultado.
func getOne[T any](ctx context.Context, q Querier, op, query string, scan func(pgx.Row) (*T, error), args ...any) (*T, error) {
	v, err := scan(q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// ─── Monedas ────────────────────────────────────────────────────────────────

const currencyColumns = "id, code, description, symbol, created_at, updated_at"

// CurrencyRepo implementación del puerto CurrencyRepository sobre PostgreSQL.
type CurrencyRepo struct {
	q Querier
}

// NewCurrencyRepository construye el adaptador de persistencia para monedas.
func NewCurrencyRepository(q Querier) *CurrencyRepo {
	return &CurrencyRepo{q: q}
}

func scanCurrency(row pgx.Row) (*entity.Currency, error) {
	var c entity.Currency
	err := row.Scan(&c.ID, &c.Code, &c.Description, &c.Symbol, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *CurrencyRepo) Create(ctx context.Context, c *entity.Currency) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO currencies (code, description, symbol, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.Code, c.Description, c.Symbol, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return mapWriteError("insert currency", err)
	}
	return nil
}

func (r *CurrencyRepo) GetByID(ctx context.Context, id int64) (*entity.Currency, error) {
	return getOne(ctx, r.q, "get currency", `SELECT `+currencyColumns+` FROM currencies WHERE id = $1`, scanCurrency, id)
}

func (r *CurrencyRepo) GetByCode(ctx context.Context, code string) (*entity.Currency, error) {
	return getOne(ctx, r.q, "get currency by code", `SELECT `+currencyColumns+` FROM currencies WHERE code = $1`, scanCurrency, code)
}

func (r *CurrencyRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Currency, int, error) {
	return listCatalog(ctx, r.q, "currencies", currencyColumns, p, scanCurrency)
}

func (r *CurrencyRepo) Update(ctx context.Context, c *entity.Currency) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE currencies SET code = $2, description = $3, symbol = $4, updated_at = $5
		WHERE id = $1`,
		c.ID, c.Code, c.Description, c.Symbol, c.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update currency", err)
	}
	return affectOne(tag, "moneda", c.ID)
}

func (r *CurrencyRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM currencies WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete currency", err)
	}
	return affectOne(tag, "moneda", id)
}

// ─── Tipos de documento ─────────────────────────────────────────────────────

const documentTypeColumns = "id, code, description, is_credit_note, created_at, updated_at"

// DocumentTypeRepo implementación del puerto DocumentTypeRepository sobre PostgreSQL.
type DocumentTypeRepo struct {
	q Querier
}

// NewDocumentTypeRepository construye el adaptador de persistencia para tipos de documento.
func NewDocumentTypeRepository(q Querier) *DocumentTypeRepo {
	return &DocumentTypeRepo{q: q}
}

func scanDocumentType(row pgx.Row) (*entity.DocumentType, error) {
	var d entity.DocumentType
	err := row.Scan(&d.ID, &d.Code, &d.Description, &d.IsCreditNote, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *DocumentTypeRepo) Create(ctx context.Context, d *entity.DocumentType) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_types (code, description, is_credit_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		d.Code, d.Description, d.IsCreditNote, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		return mapWriteError("insert document type", err)
	}
	return nil
}

func (r *DocumentTypeRepo) GetByID(ctx context.Context, id int64) (*entity.DocumentType, error) {
	return getOne(ctx, r.q, "get document type", `SELECT `+documentTypeColumns+` FROM document_types WHERE id = $1`, scanDocumentType, id)
}

func (r *DocumentTypeRepo) GetByCode(ctx context.Context, code string) (*entity.DocumentType, error) {
	return getOne(ctx, r.q, "get document type by code", `SELECT `+documentTypeColumns+` FROM document_types WHERE code = $1`, scanDocumentType, code)
}

func (r *DocumentTypeRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.DocumentType, int, error) {
	return listCatalog(ctx, r.q, "document_types", documentTypeColumns, p, scanDocumentType)
}

func (r *DocumentTypeRepo) Update(ctx context.Context, d *entity.DocumentType) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE document_types SET code = $2, description = $3, is_credit_note = $4, updated_at = $5
		WHERE id = $1`,
		d.ID, d.Code, d.Description, d.IsCreditNote, d.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update document type", err)
	}
	return affectOne(tag, "tipo de documento", d.ID)
}

func (r *DocumentTypeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM document_types WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete document type", err)
	}
	return affectOne(tag, "tipo de documento", id)
}

// ─── Tipos de pago ──────────────────────────────────────────────────────────

const paymentTypeColumns = "id, code, description, created_at, updated_at"

// PaymentTypeRepo implementación del puerto PaymentTypeRepository sobre PostgreSQL.
type PaymentTypeRepo struct {
	q Querier
}

// NewPaymentTypeRepository construye el adaptador de persistencia para tipos de pago.
func NewPaymentTypeRepository(q Querier) *PaymentTypeRepo {
	return &PaymentTypeRepo{q: q}
}

func scanPaymentType(row pgx.Row) (*entity.PaymentType, error) {
	var p entity.PaymentType
	err := row.Scan(&p.ID, &p.Code, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *PaymentTypeRepo) Create(ctx context.Context, p *entity.PaymentType) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO payment_types (code, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		p.Code, p.Description, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return mapWriteError("insert payment type", err)
	}
	return nil
}

func (r *PaymentTypeRepo) GetByID(ctx context.Context, id int64) (*entity.PaymentType, error) {
	return getOne(ctx, r.q, "get payment type", `SELECT `+paymentTypeColumns+` FROM payment_types WHERE id = $1`, scanPaymentType, id)
}

func (r *PaymentTypeRepo) GetByCode(ctx context.Context, code string) (*entity.PaymentType, error) {
	return getOne(ctx, r.q, "get payment type by code", `SELECT `+paymentTypeColumns+` FROM payment_types WHERE code = $1`, scanPaymentType, code)
}

func (r *PaymentTypeRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.PaymentType, int, error) {
	return listCatalog(ctx, r.q, "payment_types", paymentTypeColumns, p, scanPaymentType)
}

func (r *PaymentTypeRepo) Update(ctx context.Context, p *entity.PaymentType) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE payment_types SET code = $2, description = $3, updated_at = $4
		WHERE id = $1`,
		p.ID, p.Code, p.Description, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update payment type", err)
	}
	return affectOne(tag, "tipo de pago", p.ID)
}

func (r *PaymentTypeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM payment_types WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete payment type", err)
	}
	return affectOne(tag, "tipo de pago", id)
}

// ─── Estados ────────────────────────────────────────────────────────────────

const stateColumns = "id, code, description, is_final, created_at, updated_at"

// StateRepo implementación del puerto StateRepository sobre PostgreSQL.
type StateRepo struct {
	q Querier
}

// NewStateRepository construye el adaptador de persistencia para estados.
func NewStateRepository(q Querier) *StateRepo {
	return &StateRepo{q: q}
}

func scanState(row pgx.Row) (*entity.State, error) {
	var s entity.State
	err := row.Scan(&s.ID, &s.Code, &s.Description, &s.IsFinal, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *StateRepo) Create(ctx context.Context, s *entity.State) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO states (code, description, is_final, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.Code, s.Description, s.IsFinal, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return mapWriteError("insert state", err)
	}
	return nil
}

func (r *StateRepo) GetByID(ctx context.Context, id int64) (*entity.State, error) {
	return getOne(ctx, r.q, "get state", `SELECT `+stateColumns+` FROM states WHERE id = $1`, scanState, id)
}

func (r *StateRepo) GetByCode(ctx context.Context, code string) (*entity.State, error) {
	return getOne(ctx, r.q, "get state by code", `SELECT `+stateColumns+` FROM states WHERE code = $1`, scanState, code)
}

func (r *StateRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.State, int, error) {
	return listCatalog(ctx, r.q, "states", stateColumns, p, scanState)
}

func (r *StateRepo) Update(ctx context.Context, s *entity.State) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE states SET code = $2, description = $3, is_final = $4, updated_at = $5
		WHERE id = $1`,
		s.ID, s.Code, s.Description, s.IsFinal, s.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update state", err)
	}
	return affectOne(tag, "estado", s.ID)
}

func (r *StateRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM states WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete state", err)
	}
	return affectOne(tag, "estado", id)
}
