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
	_ repository.ProviderRepository    = (*ProviderRepo)(nil)
	_ repository.SocietyRepository     = (*SocietyRepo)(nil)
	_ repository.UserSocietyRepository = (*UserSocietyRepo)(nil)
)

// ProviderRepo proveedores en memoria. Los dados de baja no se devuelven.
type ProviderRepo struct{ s *Store }

// NewProviderRepository construye el repositorio sobre el store.
func NewProviderRepository(s *Store) *ProviderRepo { return &ProviderRepo{s: s} }

func (r *ProviderRepo) Create(_ context.Context, p *entity.Provider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.findCUIT(p.CUIT, 0) != nil {
		return fmt.Errorf("proveedor con CUIT %s: %w", p.CUIT, domain.ErrDuplicate)
	}
	p.ID = r.s.nextID()
	r.s.providers[p.ID] = ptrCopy(p)
	return nil
}

func (r *ProviderRepo) GetByID(_ context.Context, id int64) (*entity.Provider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p := r.s.providers[id]
	if p == nil || p.DeletedAt != nil {
		return nil, nil
	}
	return ptrCopy(p), nil
}

func (r *ProviderRepo) GetByCUIT(_ context.Context, cuit string) (*entity.Provider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ptrCopy(r.findCUIT(cuit, 0)), nil
}

func (r *ProviderRepo) List(_ context.Context, f entity.ProviderFilter) ([]*entity.Provider, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Provider
	for _, p := range r.s.providers {
		switch {
		case p.DeletedAt != nil:
		case f.CUIT != "" && p.CUIT != f.CUIT:
		case f.Active != nil && p.Active != *f.Active:
		case !matches(f.Search, p.BusinessName):
		default:
			out = append(out, ptrCopy(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BusinessName != out[j].BusinessName {
			return out[i].BusinessName < out[j].BusinessName
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (r *ProviderRepo) Update(_ context.Context, p *entity.Provider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.providers[p.ID]
	if cur == nil || cur.DeletedAt != nil {
		return fmt.Errorf("proveedor %d: %w", p.ID, domain.ErrNotFound)
	}
	if r.findCUIT(p.CUIT, p.ID) != nil {
		return fmt.Errorf("proveedor con CUIT %s: %w", p.CUIT, domain.ErrDuplicate)
	}
	r.s.providers[p.ID] = ptrCopy(p)
	return nil
}

func (r *ProviderRepo) Delete(_ context.Context, id int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.providers[id]
	if p == nil || p.DeletedAt != nil {
		return fmt.Errorf("proveedor %d: %w", id, domain.ErrNotFound)
	}
	p.DeletedAt = &at
	p.UpdatedAt = at
	return nil
}

func (r *ProviderRepo) findCUIT(cuit string, exceptID int64) *entity.Provider {
	for _, p := range r.s.providers {
		if p.DeletedAt == nil && p.CUIT == cuit && p.ID != exceptID {
			return p
		}
	}
	return nil
}

// SocietyRepo sociedades en memoria. Los dados de baja no se devuelven.
type SocietyRepo struct{ s *Store }

// NewSocietyRepository construye el repositorio sobre el store.
func NewSocietyRepository(s *Store) *SocietyRepo { return &SocietyRepo{s: s} }

func (r *SocietyRepo) Create(_ context.Context, soc *entity.Society) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(soc); err != nil {
		return err
	}
	soc.ID = r.s.nextID()
	r.s.societies[soc.ID] = ptrCopy(soc)
	return nil
}

func (r *SocietyRepo) GetByID(_ context.Context, id int64) (*entity.Society, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	soc := r.s.societies[id]
	if soc == nil || soc.DeletedAt != nil {
		return nil, nil
	}
	return ptrCopy(soc), nil
}

func (r *SocietyRepo) GetByCode(_ context.Context, code string) (*entity.Society, error) {
	return r.find(func(soc *entity.Society) bool { return soc.Code == code }), nil
}

func (r *SocietyRepo) GetByCUIT(_ context.Context, cuit string) (*entity.Society, error) {
	return r.find(func(soc *entity.Society) bool { return soc.CUIT == cuit }), nil
}

func (r *SocietyRepo) List(_ context.Context, p repository.ListParams) ([]*entity.Society, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Society
	for _, soc := range r.s.societies {
		if soc.DeletedAt == nil && matches(p.Search, soc.Code, soc.Description) {
			out = append(out, ptrCopy(soc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, p.Limit, p.Offset), len(out), nil
}

func (r *SocietyRepo) Update(_ context.Context, soc *entity.Society) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.societies[soc.ID]
	if cur == nil || cur.DeletedAt != nil {
		return fmt.Errorf("sociedad %d: %w", soc.ID, domain.ErrNotFound)
	}
	if err := r.checkUnique(soc); err != nil {
		return err
	}
	r.s.societies[soc.ID] = ptrCopy(soc)
	return nil
}

func (r *SocietyRepo) Delete(_ context.Context, id int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	soc := r.s.societies[id]
	if soc == nil || soc.DeletedAt != nil {
		return fmt.Errorf("sociedad %d: %w", id, domain.ErrNotFound)
	}
	soc.DeletedAt = &at
	soc.UpdatedAt = at
	return nil
}

func (r *SocietyRepo) find(match func(*entity.Society) bool) *entity.Society {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, soc := range r.s.societies {
		if soc.DeletedAt == nil && match(soc) {
			return ptrCopy(soc)
		}
	}
	return nil
}

// checkUnique con mu tomado.
func (r *SocietyRepo) checkUnique(soc *entity.Society) error {
	for _, other := range r.s.societies {
		if other.DeletedAt != nil || other.ID == soc.ID {
			continue
		}
		if other.Code == soc.Code || other.CUIT == soc.CUIT {
			return fmt.Errorf("sociedad %s: %w", soc.Code, domain.ErrDuplicate)
		}
	}
	return nil
}

// UserSocietyRepo asignaciones usuario-sociedad en memoria.
type UserSocietyRepo struct{ s *Store }

// NewUserSocietyRepository construye el repositorio sobre el store.
func NewUserSocietyRepository(s *Store) *UserSocietyRepo { return &UserSocietyRepo{s: s} }

func (r *UserSocietyRepo) Create(_ context.Context, a *entity.UserSocietyAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.societies[a.SocietyID] == nil {
		return fmt.Errorf("sociedad %d: %w", a.SocietyID, domain.ErrNotFound)
	}
	for _, other := range r.s.assignments {
		if other.UserID == a.UserID && other.SocietyID == a.SocietyID {
			return fmt.Errorf("asignación %s/%d: %w", a.UserID, a.SocietyID, domain.ErrDuplicate)
		}
	}
	a.ID = r.s.nextID()
	r.s.assignments[a.ID] = ptrCopy(a)
	return nil
}

func (r *UserSocietyRepo) GetByID(_ context.Context, id int64) (*entity.UserSocietyAssignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ptrCopy(r.s.assignments[id]), nil
}

func (r *UserSocietyRepo) Exists(_ context.Context, userID string, societyID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.assignments {
		if a.UserID == userID && a.SocietyID == societyID {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserSocietyRepo) ListByUser(_ context.Context, userID string) ([]*entity.UserSocietyAssignment, error) {
	return r.filter(func(a *entity.UserSocietyAssignment) bool { return a.UserID == userID }), nil
}

func (r *UserSocietyRepo) ListBySociety(_ context.Context, societyID int64) ([]*entity.UserSocietyAssignment, error) {
	return r.filter(func(a *entity.UserSocietyAssignment) bool { return a.SocietyID == societyID }), nil
}

func (r *UserSocietyRepo) ListSocietiesByUser(_ context.Context, userID string) ([]*entity.Society, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Society
	for _, a := range r.s.assignments {
		soc := r.s.societies[a.SocietyID]
		if a.UserID == userID && soc != nil && soc.DeletedAt == nil {
			out = append(out, ptrCopy(soc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *UserSocietyRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.assignments[id] == nil {
		return fmt.Errorf("asignación %d: %w", id, domain.ErrNotFound)
	}
	delete(r.s.assignments, id)
	return nil
}

func (r *UserSocietyRepo) filter(match func(*entity.UserSocietyAssignment) bool) []*entity.UserSocietyAssignment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.UserSocietyAssignment
	for _, a := range r.s.assignments {
		if match(a) {
			out = append(out, ptrCopy(a))
		}
	}
	sortByID(out, func(a *entity.UserSocietyAssignment) int64 { return a.ID })
	return out
}
