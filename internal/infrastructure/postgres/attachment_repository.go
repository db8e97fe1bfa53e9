package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
)

var (
	_ repository.AttachmentRepository    = (*AttachmentRepo)(nil)
	_ repository.NoteRepository          = (*NoteRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
)

const attachmentColumns = "id, document_id, file_name, content_type, size, storage_key, created_by, created_at, deleted_at"

// AttachmentRepo metadatos de adjuntos sobre PostgreSQL.
type AttachmentRepo struct {
	q Querier
}

// NewAttachmentRepository construye el adaptador; q puede ser el pool o una transacción.
func NewAttachmentRepository(q Querier) *AttachmentRepo {
	return &AttachmentRepo{q: q}
}

func scanAttachment(row pgx.Row) (*entity.Attachment, error) {
	var a entity.Attachment
	err := row.Scan(&a.ID, &a.DocumentID, &a.FileName, &a.ContentType, &a.Size, &a.StorageKey,
		&a.CreatedBy, &a.CreatedAt, &a.DeletedAt)
	return &a, err
}

func (r *AttachmentRepo) Create(ctx context.Context, a *entity.Attachment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO attachments (document_id, file_name, content_type, size, storage_key, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		a.DocumentID, a.FileName, a.ContentType, a.Size, a.StorageKey, a.CreatedBy, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return documentWrite("insert attachment", err)
	}
	return nil
}

func (r *AttachmentRepo) GetByID(ctx context.Context, id int64) (*entity.Attachment, error) {
	return getOne(ctx, r.q, "get attachment",
		`SELECT `+attachmentColumns+` FROM attachments WHERE id = $1 AND deleted_at IS NULL`, scanAttachment, id)
}

func (r *AttachmentRepo) ListByDocument(ctx context.Context, documentID int64) ([]*entity.Attachment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE document_id = $1 AND deleted_at IS NULL ORDER BY id`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()
	var out []*entity.Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AttachmentRepo) Delete(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE attachments SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return affectOne(tag, "adjunto", id)
}

// DeleteByDocument da de baja todos los adjuntos vivos del documento (puede no haber ninguno).
func (r *AttachmentRepo) DeleteByDocument(ctx context.Context, documentID int64, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE attachments SET deleted_at = $2 WHERE document_id = $1 AND deleted_at IS NULL`, documentID, at)
	if err != nil {
		return fmt.Errorf("delete attachments by document: %w", err)
	}
	return nil
}

// ─── Notas ──────────────────────────────────────────────────────────────────

const noteColumns = "id, document_id, text, created_by, created_at"

// NoteRepo notas de documentos sobre PostgreSQL.
type NoteRepo struct {
	q Querier
}

// NewNoteRepository construye el adaptador; q puede ser el pool o una transacción.
func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

func scanNote(row pgx.Row) (*entity.Note, error) {
	var n entity.Note
	err := row.Scan(&n.ID, &n.DocumentID, &n.Text, &n.CreatedBy, &n.CreatedAt)
	return &n, err
}

func (r *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO notes (document_id, text, created_by, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		n.DocumentID, n.Text, n.CreatedBy, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return documentWrite("insert note", err)
	}
	return nil
}

func (r *NoteRepo) GetByID(ctx context.Context, id int64) (*entity.Note, error) {
	return getOne(ctx, r.q, "get note", `SELECT `+noteColumns+` FROM notes WHERE id = $1`, scanNote, id)
}

// ListByDocument devuelve las notas de la más reciente a la más antigua.
func (r *NoteRepo) ListByDocument(ctx context.Context, documentID int64) ([]*entity.Note, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE document_id = $1 ORDER BY created_at DESC, id DESC`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	var out []*entity.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NoteRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return affectOne(tag, "nota", id)
}

// ─── Órdenes de compra asociadas ────────────────────────────────────────────

const purchaseOrderColumns = "id, document_id, number, position, amount, created_at"

// PurchaseOrderRepo posiciones de OC asociadas a documentos sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador; q puede ser el pool o una transacción.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.DocumentID, &po.Number, &po.Position, &po.Amount, &po.CreatedAt)
	return &po, err
}

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO purchase_orders (document_id, number, position, amount, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		po.DocumentID, po.Number, po.Position, po.Amount, po.CreatedAt,
	).Scan(&po.ID)
	if err != nil {
		return documentWrite("insert purchase order", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return getOne(ctx, r.q, "get purchase order",
		`SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, scanPurchaseOrder, id)
}

func (r *PurchaseOrderRepo) Exists(ctx context.Context, documentID int64, number, position string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM purchase_orders WHERE document_id = $1 AND number = $2 AND position = $3)`,
		documentID, number, position,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists purchase order: %w", err)
	}
	return ok, nil
}

func (r *PurchaseOrderRepo) ListByDocument(ctx context.Context, documentID int64) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE document_id = $1 ORDER BY number, position`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, po)
	}
	return out, rows.Err()
}

func (r *PurchaseOrderRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return affectOne(tag, "orden de compra", id)
}
