package repository

import (
	"context"
	"time"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
)

// DocumentRepository puerto de persistencia para documentos. Los eliminados lógicamente no se devuelven.
type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	GetByID(ctx context.Context, id int64) (*entity.Document, error)
	GetDetail(ctx context.Context, id int64) (*entity.DocumentDetail, error)
	// FindByNumber busca un documento vivo del proveedor con el mismo tipo, punto de venta y número.
	FindByNumber(ctx context.Context, providerID, documentTypeID int64, pointOfSale, number string) (*entity.Document, error)
	List(ctx context.Context, filter entity.DocumentFilter) ([]*entity.DocumentDetail, int, error)
	Update(ctx context.Context, document *entity.Document) error
	UpdateState(ctx context.Context, id, stateID int64, at time.Time) error
	Delete(ctx context.Context, id int64, at time.Time) error
}

// AttachmentRepository puerto de persistencia para adjuntos (metadatos).
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.Attachment) error
	GetByID(ctx context.Context, id int64) (*entity.Attachment, error)
	ListByDocument(ctx context.Context, documentID int64) ([]*entity.Attachment, error)
	Delete(ctx context.Context, id int64, at time.Time) error
	DeleteByDocument(ctx context.Context, documentID int64, at time.Time) error
}

// NoteRepository puerto de persistencia para notas.
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	GetByID(ctx context.Context, id int64) (*entity.Note, error)
	ListByDocument(ctx context.Context, documentID int64) ([]*entity.Note, error)
	Delete(ctx context.Context, id int64) error
}

// PurchaseOrderRepository puerto de persistencia para las órdenes de compra asociadas a documentos.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	Exists(ctx context.Context, documentID int64, number, position string) (bool, error)
	ListByDocument(ctx context.Context, documentID int64) ([]*entity.PurchaseOrder, error)
	Delete(ctx context.Context, id int64) error
}
