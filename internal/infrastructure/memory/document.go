package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
)

var (
	_ repository.DocumentRepository      = (*DocumentRepo)(nil)
	_ repository.AttachmentRepository    = (*AttachmentRepo)(nil)
	_ repository.NoteRepository          = (*NoteRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
)

// DocumentRepo documentos en memoria. Los dados de baja no se devuelven.
type DocumentRepo struct{ s *Store }

// NewDocumentRepository construye el repositorio sobre el store.
func NewDocumentRepository(s *Store) *DocumentRepo { return &DocumentRepo{s: s} }

func (r *DocumentRepo) Create(_ context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkRefs(d); err != nil {
		return err
	}
	if r.findNumber(d.ProviderID, d.DocumentTypeID, d.PointOfSale, d.Number, 0) != nil {
		return fmt.Errorf("documento %s-%s: %w", d.PointOfSale, d.Number, domain.ErrDuplicate)
	}
	d.ID = r.s.nextID()
	r.s.documents[d.ID] = ptrCopy(d)
	return nil
}

func (r *DocumentRepo) GetByID(_ context.Context, id int64) (*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d := r.s.documents[id]
	if d == nil || d.DeletedAt != nil {
		return nil, nil
	}
	return ptrCopy(d), nil
}

func (r *DocumentRepo) GetDetail(_ context.Context, id int64) (*entity.DocumentDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d := r.s.documents[id]
	if d == nil || d.DeletedAt != nil {
		return nil, nil
	}
	return r.detail(d), nil
}

func (r *DocumentRepo) FindByNumber(_ context.Context, providerID, documentTypeID int64, pointOfSale, number string) (*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ptrCopy(r.findNumber(providerID, documentTypeID, pointOfSale, number, 0)), nil
}

func (r *DocumentRepo) List(_ context.Context, f entity.DocumentFilter) ([]*entity.DocumentDetail, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.DocumentDetail
	for _, d := range r.s.documents {
		if d.DeletedAt != nil {
			continue
		}
		det := r.detail(d)
		switch {
		case f.ProviderID != 0 && d.ProviderID != f.ProviderID:
		case f.SocietyID != 0 && d.SocietyID != f.SocietyID:
		case f.StateID != 0 && d.StateID != f.StateID:
		case f.DocumentTypeID != 0 && d.DocumentTypeID != f.DocumentTypeID:
		case f.ProviderCUIT != "" && det.ProviderCUIT != f.ProviderCUIT:
		case f.Number != "" && d.Number != f.Number:
		case f.IssuedFrom != nil && d.IssueDate.Before(*f.IssuedFrom):
		case f.IssuedTo != nil && d.IssueDate.After(*f.IssuedTo):
		case f.PendingOnly && det.StateFinal:
		default:
			out = append(out, det)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].IssueDate.After(out[j].IssueDate)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (r *DocumentRepo) Update(_ context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.documents[d.ID]
	if cur == nil || cur.DeletedAt != nil {
		return fmt.Errorf("documento %d: %w", d.ID, domain.ErrNotFound)
	}
	if err := r.checkRefs(d); err != nil {
		return err
	}
	if r.findNumber(d.ProviderID, d.DocumentTypeID, d.PointOfSale, d.Number, d.ID) != nil {
		return fmt.Errorf("documento %s-%s: %w", d.PointOfSale, d.Number, domain.ErrDuplicate)
	}
	r.s.documents[d.ID] = ptrCopy(d)
	return nil
}

func (r *DocumentRepo) UpdateState(_ context.Context, id, stateID int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.documents[id]
	if d == nil || d.DeletedAt != nil {
		return fmt.Errorf("documento %d: %w", id, domain.ErrNotFound)
	}
	if r.s.states[stateID] == nil {
		return fmt.Errorf("estado %d: %w", stateID, domain.ErrNotFound)
	}
	d.StateID = stateID
	d.UpdatedAt = at
	return nil
}

func (r *DocumentRepo) Delete(_ context.Context, id int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.documents[id]
	if d == nil || d.DeletedAt != nil {
		return fmt.Errorf("documento %d: %w", id, domain.ErrNotFound)
	}
	d.DeletedAt = &at
	d.UpdatedAt = at
	return nil
}

// checkRefs emula las claves foráneas, con mu tomado.
func (r *DocumentRepo) checkRefs(d *entity.Document) error {
	switch {
	case r.s.providers[d.ProviderID] == nil:
		return fmt.Errorf("proveedor %d: %w", d.ProviderID, domain.ErrNotFound)
	case r.s.societies[d.SocietyID] == nil:
		return fmt.Errorf("sociedad %d: %w", d.SocietyID, domain.ErrNotFound)
	case r.s.documentTypes[d.DocumentTypeID] == nil:
		return fmt.Errorf("tipo de documento %d: %w", d.DocumentTypeID, domain.ErrNotFound)
	case r.s.currencies[d.CurrencyID] == nil:
		return fmt.Errorf("moneda %d: %w", d.CurrencyID, domain.ErrNotFound)
	case r.s.states[d.StateID] == nil:
		return fmt.Errorf("estado %d: %w", d.StateID, domain.ErrNotFound)
	case d.PaymentTypeID != nil && r.s.paymentTypes[*d.PaymentTypeID] == nil:
		return fmt.Errorf("tipo de pago %d: %w", *d.PaymentTypeID, domain.ErrNotFound)
	}
	return nil
}

func (r *DocumentRepo) findNumber(providerID, documentTypeID int64, pos, number string, exceptID int64) *entity.Document {
	for _, d := range r.s.documents {
		if d.DeletedAt == nil && d.ID != exceptID && d.ProviderID == providerID &&
			d.DocumentTypeID == documentTypeID && d.PointOfSale == pos && d.Number == number {
			return d
		}
	}
	return nil
}

// detail arma la vista con las referencias, con mu tomado.
func (r *DocumentRepo) detail(d *entity.Document) *entity.DocumentDetail {
	det := &entity.DocumentDetail{Document: *d}
	if p := r.s.providers[d.ProviderID]; p != nil {
		det.ProviderName, det.ProviderCUIT = p.BusinessName, p.CUIT
	}
	if soc := r.s.societies[d.SocietyID]; soc != nil {
		det.SocietyCode, det.SocietyName = soc.Code, soc.Description
	}
	if t := r.s.documentTypes[d.DocumentTypeID]; t != nil {
		det.DocumentTypeCode = t.Code
	}
	if c := r.s.currencies[d.CurrencyID]; c != nil {
		det.CurrencyCode = c.Code
	}
	if st := r.s.states[d.StateID]; st != nil {
		det.StateCode, det.StateFinal = st.Code, st.IsFinal
	}
	return det
}

// AttachmentRepo metadatos de adjuntos en memoria.
type AttachmentRepo struct{ s *Store }

// NewAttachmentRepository construye el repositorio sobre el store.
func NewAttachmentRepository(s *Store) *AttachmentRepo { return &AttachmentRepo{s: s} }

func (r *AttachmentRepo) Create(_ context.Context, a *entity.Attachment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.documents[a.DocumentID] == nil {
		return fmt.Errorf("documento %d: %w", a.DocumentID, domain.ErrNotFound)
	}
	a.ID = r.s.nextID()
	r.s.attachments[a.ID] = ptrCopy(a)
	return nil
}

func (r *AttachmentRepo) GetByID(_ context.Context, id int64) (*entity.Attachment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a := r.s.attachments[id]
	if a == nil || a.DeletedAt != nil {
		return nil, nil
	}
	return ptrCopy(a), nil
}

func (r *AttachmentRepo) ListByDocument(_ context.Context, documentID int64) ([]*entity.Attachment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Attachment
	for _, a := range r.s.attachments {
		if a.DocumentID == documentID && a.DeletedAt == nil {
			out = append(out, ptrCopy(a))
		}
	}
	sortByID(out, func(a *entity.Attachment) int64 { return a.ID })
	return out, nil
}

func (r *AttachmentRepo) Delete(_ context.Context, id int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a := r.s.attachments[id]
	if a == nil || a.DeletedAt != nil {
		return fmt.Errorf("adjunto %d: %w", id, domain.ErrNotFound)
	}
	a.DeletedAt = &at
	return nil
}

func (r *AttachmentRepo) DeleteByDocument(_ context.Context, documentID int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.attachments {
		if a.DocumentID == documentID && a.DeletedAt == nil {
			a.DeletedAt = &at
		}
	}
	return nil
}

// NoteRepo notas en memoria.
type NoteRepo struct{ s *Store }

// NewNoteRepository construye el repositorio sobre el store.
func NewNoteRepository(s *Store) *NoteRepo { return &NoteRepo{s: s} }

func (r *NoteRepo) Create(_ context.Context, n *entity.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.documents[n.DocumentID] == nil {
		return fmt.Errorf("documento %d: %w", n.DocumentID, domain.ErrNotFound)
	}
	n.ID = r.s.nextID()
	r.s.notes[n.ID] = ptrCopy(n)
	return nil
}

func (r *NoteRepo) GetByID(_ context.Context, id int64) (*entity.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ptrCopy(r.s.notes[id]), nil
}

// ListByDocument devuelve las notas de la más reciente a la más antigua.
func (r *NoteRepo) ListByDocument(_ context.Context, documentID int64) ([]*entity.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Note
	for _, n := range r.s.notes {
		if n.DocumentID == documentID {
			out = append(out, ptrCopy(n))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *NoteRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.notes[id] == nil {
		return fmt.Errorf("nota %d: %w", id, domain.ErrNotFound)
	}
	delete(r.s.notes, id)
	return nil
}

// PurchaseOrderRepo OCs asociadas en memoria.
type PurchaseOrderRepo struct{ s *Store }

// NewPurchaseOrderRepository construye el repositorio sobre el store.
func NewPurchaseOrderRepository(s *Store) *PurchaseOrderRepo { return &PurchaseOrderRepo{s: s} }

func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.documents[po.DocumentID] == nil {
		return fmt.Errorf("documento %d: %w", po.DocumentID, domain.ErrNotFound)
	}
	if r.exists(po.DocumentID, po.Number, po.Position) {
		return fmt.Errorf("orden de compra %s/%s: %w", po.Number, po.Position, domain.ErrDuplicate)
	}
	po.ID = r.s.nextID()
	r.s.orders[po.ID] = ptrCopy(po)
	return nil
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id int64) (*entity.PurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ptrCopy(r.s.orders[id]), nil
}

func (r *PurchaseOrderRepo) Exists(_ context.Context, documentID int64, number, position string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.exists(documentID, number, position), nil
}

func (r *PurchaseOrderRepo) ListByDocument(_ context.Context, documentID int64) ([]*entity.PurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.PurchaseOrder
	for _, po := range r.s.orders {
		if po.DocumentID == documentID {
			out = append(out, ptrCopy(po))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *PurchaseOrderRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.orders[id] == nil {
		return fmt.Errorf("orden de compra %d: %w", id, domain.ErrNotFound)
	}
	delete(r.s.orders, id)
	return nil
}

func (r *PurchaseOrderRepo) exists(documentID int64, number, position string) bool {
	for _, po := range r.s.orders {
		if po.DocumentID == documentID && po.Number == number && po.Position == position {
			return true
		}
	}
	return false
}
