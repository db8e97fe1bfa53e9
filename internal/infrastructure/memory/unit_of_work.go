package memory

import (
	"context"
	"sync"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
)

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork serializa las unidades de trabajo y restaura las tablas de documentos si fn falla.
type UnitOfWork struct {
	s     *Store
	mu    sync.Mutex
	repos repository.Repositories
}

// NewUnitOfWork construye la unidad de trabajo sobre el store.
func NewUnitOfWork(s *Store) *UnitOfWork {
	return &UnitOfWork{s: s, repos: repository.Repositories{
		Documents:      NewDocumentRepository(s),
		Attachments:    NewAttachmentRepository(s),
		Notes:          NewNoteRepository(s),
		PurchaseOrders: NewPurchaseOrderRepository(s),
	}}
}

// Run ejecuta fn; si devuelve error se descartan sus escrituras.
func (u *UnitOfWork) Run(ctx context.Context, fn func(r repository.Repositories) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := u.s.takeSnapshot()
	if err := fn(u.repos); err != nil {
		u.s.restore(snap)
		return err
	}
	return nil
}
