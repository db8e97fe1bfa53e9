package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, provider_id, society_id, document_type_id, currency_id, state_id, payment_type_id,
	point_of_sale, number, issue_date, due_date, amount, description, created_by, created_at, updated_at, deleted_at`

// documentDetailColumns columnas de la vista de lectura (documents d + joins).
var documentDetailColumns = columns(
	"d.id", "d.provider_id", "d.society_id", "d.document_type_id", "d.currency_id", "d.state_id", "d.payment_type_id",
	"d.point_of_sale", "d.number", "d.issue_date", "d.due_date", "d.amount", "d.description",
	"d.created_by", "d.created_at", "d.updated_at", "d.deleted_at",
	"p.business_name", "p.cuit", "s.code", "s.description", "dt.code", "c.code", "st.code", "st.is_final",
)

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador; q puede ser el pool o una transacción.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(&d.ID, &d.ProviderID, &d.SocietyID, &d.DocumentTypeID, &d.CurrencyID, &d.StateID, &d.PaymentTypeID,
		&d.PointOfSale, &d.Number, &d.IssueDate, &d.DueDate, &d.Amount, &d.Description,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt, &d.DeletedAt)
	return &d, err
}

func scanDocumentDetail(row pgx.Row) (*entity.DocumentDetail, error) {
	var d entity.DocumentDetail
	err := row.Scan(&d.ID, &d.ProviderID, &d.SocietyID, &d.DocumentTypeID, &d.CurrencyID, &d.StateID, &d.PaymentTypeID,
		&d.PointOfSale, &d.Number, &d.IssueDate, &d.DueDate, &d.Amount, &d.Description,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
		&d.ProviderName, &d.ProviderCUIT, &d.SocietyCode, &d.SocietyName, &d.DocumentTypeCode, &d.CurrencyCode,
		&d.StateCode, &d.StateFinal)
	return &d, err
}

// documentWrite traduce errores de escritura: una FK rota es una referencia inexistente.
func documentWrite(op string, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%s: referencia inexistente: %w", op, domain.ErrNotFound)
	}
	return mapWriteError(op, err)
}

func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO documents (provider_id, society_id, document_type_id, currency_id, state_id, payment_type_id,
			point_of_sale, number, issue_date, due_date, amount, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`,
		d.ProviderID, d.SocietyID, d.DocumentTypeID, d.CurrencyID, d.StateID, d.PaymentTypeID,
		d.PointOfSale, d.Number, d.IssueDate, d.DueDate, d.Amount, d.Description, d.CreatedBy, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		return documentWrite("insert document", err)
	}
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	return getOne(ctx, r.q, "get document",
		`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND deleted_at IS NULL`, scanDocument, id)
}

func (r *DocumentRepo) GetDetail(ctx context.Context, id int64) (*entity.DocumentDetail, error) {
	query, args, err := documentDetailQuery(documentDetailColumns).Where(sq.Eq{"d.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get document detail: %w", err)
	}
	return getOne(ctx, r.q, "get document detail", query, scanDocumentDetail, args...)
}

func (r *DocumentRepo) FindByNumber(ctx context.Context, providerID, documentTypeID int64, pointOfSale, number string) (*entity.Document, error) {
	return getOne(ctx, r.q, "find document by number", `
		SELECT `+documentColumns+` FROM documents
		WHERE provider_id = $1 AND document_type_id = $2 AND point_of_sale = $3 AND number = $4 AND deleted_at IS NULL`,
		scanDocument, providerID, documentTypeID, pointOfSale, number)
}

// List aplica los filtros y ordena por fecha de emisión descendente.
func (r *DocumentRepo) List(ctx context.Context, f entity.DocumentFilter) ([]*entity.DocumentDetail, int, error) {
	total, err := count(ctx, r.q, documentListQuery("COUNT(*)", f))
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	b := documentListQuery(documentDetailColumns, f).OrderBy("d.issue_date DESC", "d.id DESC")
	query, args, err := paginate(b, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list documents: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var out []*entity.DocumentDetail
	for rows.Next() {
		d, err := scanDocumentDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

// documentDetailQuery SELECT base con los joins de la vista de lectura, sin dados de baja.
func documentDetailQuery(cols string) sq.SelectBuilder {
	return psql.Select(cols).
		From("documents d").
		Join("providers p ON p.id = d.provider_id").
		Join("societies s ON s.id = d.society_id").
		Join("document_types dt ON dt.id = d.document_type_id").
		Join("currencies c ON c.id = d.currency_id").
		Join("states st ON st.id = d.state_id").
		Where(sq.Eq{"d.deleted_at": nil})
}

func documentListQuery(cols string, f entity.DocumentFilter) sq.SelectBuilder {
	b := documentDetailQuery(cols)
	if f.ProviderID != 0 {
		b = b.Where(sq.Eq{"d.provider_id": f.ProviderID})
	}
	if f.SocietyID != 0 {
		b = b.Where(sq.Eq{"d.society_id": f.SocietyID})
	}
	if f.StateID != 0 {
		b = b.Where(sq.Eq{"d.state_id": f.StateID})
	}
	if f.DocumentTypeID != 0 {
		b = b.Where(sq.Eq{"d.document_type_id": f.DocumentTypeID})
	}
	if f.ProviderCUIT != "" {
		b = b.Where(sq.Eq{"p.cuit": f.ProviderCUIT})
	}
	if f.Number != "" {
		b = b.Where(sq.Eq{"d.number": f.Number})
	}
	if f.IssuedFrom != nil {
		b = b.Where(sq.GtOrEq{"d.issue_date": *f.IssuedFrom})
	}
	if f.IssuedTo != nil {
		b = b.Where(sq.LtOrEq{"d.issue_date": *f.IssuedTo})
	}
	if f.PendingOnly {
		b = b.Where(sq.Eq{"st.is_final": false})
	}
	return b
}

func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE documents
		SET provider_id = $2, society_id = $3, document_type_id = $4, currency_id = $5, payment_type_id = $6,
			point_of_sale = $7, number = $8, issue_date = $9, due_date = $10, amount = $11, description = $12,
			updated_at = $13
		WHERE id = $1 AND deleted_at IS NULL`,
		d.ID, d.ProviderID, d.SocietyID, d.DocumentTypeID, d.CurrencyID, d.PaymentTypeID,
		d.PointOfSale, d.Number, d.IssueDate, d.DueDate, d.Amount, d.Description, d.UpdatedAt,
	)
	if err != nil {
		return documentWrite("update document", err)
	}
	return affectOne(tag, "documento", d.ID)
}

func (r *DocumentRepo) UpdateState(ctx context.Context, id, stateID int64, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE documents SET state_id = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`, id, stateID, at)
	if err != nil {
		return documentWrite("update document state", err)
	}
	return affectOne(tag, "documento", id)
}

// Delete baja lógica; el número queda libre para una nueva precarga.
func (r *DocumentRepo) Delete(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE documents SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return affectOne(tag, "documento", id)
}
