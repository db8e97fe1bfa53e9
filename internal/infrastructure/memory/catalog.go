package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
)

var (
	_ repository.CurrencyRepository     = (*CurrencyRepo)(nil)
	_ repository.DocumentTypeRepository = (*DocumentTypeRepo)(nil)
	_ repository.PaymentTypeRepository  = (*PaymentTypeRepo)(nil)
	_ repository.StateRepository        = (*StateRepo)(nil)
)

// catalog operaciones comunes de los catálogos con código único.
type catalog[T any] struct {
	s     *Store
	name  string
	rows  func() map[int64]*T
	id    func(*T) *int64
	code  func(*T) string
	text  func(*T) []string
	inUse func(id int64) bool // con mu tomado
}

func (c catalog[T]) create(row *T) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if c.findCode(c.code(row)) != nil {
		return fmt.Errorf("%s %s: %w", c.name, c.code(row), domain.ErrDuplicate)
	}
	*c.id(row) = c.s.nextID()
	c.rows()[*c.id(row)] = ptrCopy(row)
	return nil
}

func (c catalog[T]) getByID(id int64) *T {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return ptrCopy(c.rows()[id])
}

func (c catalog[T]) getByCode(code string) *T {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return ptrCopy(c.findCode(code))
}

func (c catalog[T]) list(p repository.ListParams) ([]*T, int) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	var out []*T
	for _, row := range c.rows() {
		if matches(p.Search, c.text(row)...) {
			out = append(out, ptrCopy(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return c.code(out[i]) < c.code(out[j]) })
	return page(out, p.Limit, p.Offset), len(out)
}

func (c catalog[T]) update(row *T) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	id := *c.id(row)
	if _, ok := c.rows()[id]; !ok {
		return fmt.Errorf("%s %d: %w", c.name, id, domain.ErrNotFound)
	}
	if other := c.findCode(c.code(row)); other != nil && *c.id(other) != id {
		return fmt.Errorf("%s %s: %w", c.name, c.code(row), domain.ErrDuplicate)
	}
	c.rows()[id] = ptrCopy(row)
	return nil
}

func (c catalog[T]) delete(id int64) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.rows()[id]; !ok {
		return fmt.Errorf("%s %d: %w", c.name, id, domain.ErrNotFound)
	}
	if c.inUse(id) {
		return fmt.Errorf("%s %d: %w", c.name, id, domain.ErrInUse)
	}
	delete(c.rows(), id)
	return nil
}

func (c catalog[T]) findCode(code string) *T {
	for _, row := range c.rows() {
		if c.code(row) == code {
			return row
		}
	}
	return nil
}

// referenced informa si algún documento (incluso dado de baja) usa la referencia.
func (s *Store) referenced(match func(d *entity.Document) bool) bool {
	for _, d := range s.documents {
		if match(d) {
			return true
		}
	}
	return false
}

// ── Currency ─────────────────────────────────────────────────────────────────

// CurrencyRepo monedas en memoria.
type CurrencyRepo struct{ c catalog[entity.Currency] }

// NewCurrencyRepository construye el repositorio sobre el store.
func NewCurrencyRepository(s *Store) *CurrencyRepo {
	return &CurrencyRepo{c: catalog[entity.Currency]{
		s: s, name: "moneda",
		rows: func() map[int64]*entity.Currency { return s.currencies },
		id:   func(r *entity.Currency) *int64 { return &r.ID },
		code: func(r *entity.Currency) string { return r.Code },
		text: func(r *entity.Currency) []string { return []string{r.Code, r.Description} },
		inUse: func(id int64) bool {
			return s.referenced(func(d *entity.Document) bool { return d.CurrencyID == id })
		},
	}}
}

func (r *CurrencyRepo) Create(_ context.Context, v *entity.Currency) error { return r.c.create(v) }
func (r *CurrencyRepo) GetByID(_ context.Context, id int64) (*entity.Currency, error) {
	return r.c.getByID(id), nil
}
func (r *CurrencyRepo) GetByCode(_ context.Context, code string) (*entity.Currency, error) {
	return r.c.getByCode(code), nil
}
func (r *CurrencyRepo) List(_ context.Context, p repository.ListParams) ([]*entity.Currency, int, error) {
	list, total := r.c.list(p)
	return list, total, nil
}
func (r *CurrencyRepo) Update(_ context.Context, v *entity.Currency) error { return r.c.update(v) }
func (r *CurrencyRepo) Delete(_ context.Context, id int64) error           { return r.c.delete(id) }

// ── DocumentType ─────────────────────────────────────────────────────────────

// DocumentTypeRepo tipos de documento en memoria.
type DocumentTypeRepo struct{ c catalog[entity.DocumentType] }

// NewDocumentTypeRepository construye el repositorio sobre el store.
func NewDocumentTypeRepository(s *Store) *DocumentTypeRepo {
	return &DocumentTypeRepo{c: catalog[entity.DocumentType]{
		s: s, name: "tipo de documento",
		rows: func() map[int64]*entity.DocumentType { return s.documentTypes },
		id:   func(r *entity.DocumentType) *int64 { return &r.ID },
		code: func(r *entity.DocumentType) string { return r.Code },
		text: func(r *entity.DocumentType) []string { return []string{r.Code, r.Description} },
		inUse: func(id int64) bool {
			return s.referenced(func(d *entity.Document) bool { return d.DocumentTypeID == id })
		},
	}}
}

func (r *DocumentTypeRepo) Create(_ context.Context, v *entity.DocumentType) error {
	return r.c.create(v)
}
func (r *DocumentTypeRepo) GetByID(_ context.Context, id int64) (*entity.DocumentType, error) {
	return r.c.getByID(id), nil
}
func (r *DocumentTypeRepo) GetByCode(_ context.Context, code string) (*entity.DocumentType, error) {
	return r.c.getByCode(code), nil
}
func (r *DocumentTypeRepo) List(_ context.Context, p repository.ListParams) ([]*entity.DocumentType, int, error) {
	list, total := r.c.list(p)
	return list, total, nil
}
func (r *DocumentTypeRepo) Update(_ context.Context, v *entity.DocumentType) error {
	return r.c.update(v)
}
func (r *DocumentTypeRepo) Delete(_ context.Context, id int64) error { return r.c.delete(id) }

// ── PaymentType ──────────────────────────────────────────────────────────────

// PaymentTypeRepo tipos de pago en memoria.
type PaymentTypeRepo struct{ c catalog[entity.PaymentType] }

// NewPaymentTypeRepository construye el repositorio sobre el store.
func NewPaymentTypeRepository(s *Store) *PaymentTypeRepo {
	return &PaymentTypeRepo{c: catalog[entity.PaymentType]{
		s: s, name: "tipo de pago",
		rows: func() map[int64]*entity.PaymentType { return s.paymentTypes },
		id:   func(r *entity.PaymentType) *int64 { return &r.ID },
		code: func(r *entity.PaymentType) string { return r.Code },
		text: func(r *entity.PaymentType) []string { return []string{r.Code, r.Description} },
		inUse: func(id int64) bool {
			return s.referenced(func(d *entity.Document) bool { return d.PaymentTypeID != nil && *d.PaymentTypeID == id })
		},
	}}
}

func (r *PaymentTypeRepo) Create(_ context.Context, v *entity.PaymentType) error {
	return r.c.create(v)
}
func (r *PaymentTypeRepo) GetByID(_ context.Context, id int64) (*entity.PaymentType, error) {
	return r.c.getByID(id), nil
}
func (r *PaymentTypeRepo) GetByCode(_ context.Context, code string) (*entity.PaymentType, error) {
	return r.c.getByCode(code), nil
}
func (r *PaymentTypeRepo) List(_ context.Context, p repository.ListParams) ([]*entity.PaymentType, int, error) {
	list, total := r.c.list(p)
	return list, total, nil
}
func (r *PaymentTypeRepo) Update(_ context.Context, v *entity.PaymentType) error {
	return r.c.update(v)
}
func (r *PaymentTypeRepo) Delete(_ context.Context, id int64) error { return r.c.delete(id) }

// ── State ────────────────────────────────────────────────────────────────────

// StateRepo estados en memoria.
type StateRepo struct{ c catalog[entity.State] }

// NewStateRepository construye el repositorio sobre el store.
func NewStateRepository(s *Store) *StateRepo {
	return &StateRepo{c: catalog[entity.State]{
		s: s, name: "estado",
		rows: func() map[int64]*entity.State { return s.states },
		id:   func(r *entity.State) *int64 { return &r.ID },
		code: func(r *entity.State) string { return r.Code },
		text: func(r *entity.State) []string { return []string{r.Code, r.Description} },
		inUse: func(id int64) bool {
			return s.referenced(func(d *entity.Document) bool { return d.StateID == id })
		},
	}}
}

func (r *StateRepo) Create(_ context.Context, v *entity.State) error { return r.c.create(v) }
func (r *StateRepo) GetByID(_ context.Context, id int64) (*entity.State, error) {
	return r.c.getByID(id), nil
}
func (r *StateRepo) GetByCode(_ context.Context, code string) (*entity.State, error) {
	return r.c.getByCode(code), nil
}
func (r *StateRepo) List(_ context.Context, p repository.ListParams) ([]*entity.State, int, error) {
	list, total := r.c.list(p)
	return list, total, nil
}
func (r *StateRepo) Update(_ context.Context, v *entity.State) error { return r.c.update(v) }
func (r *StateRepo) Delete(_ context.Context, id int64) error        { return r.c.delete(id) }
