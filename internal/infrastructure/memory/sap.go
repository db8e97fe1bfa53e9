package memory

import (
	"context"
	"sort"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
)

var (
	_ repository.SapAccountRepository       = (*SapAccountRepo)(nil)
	_ repository.SapPurchaseOrderRepository = (*SapPurchaseOrderRepo)(nil)
)

// SapAccountRepo espejo de cuentas SAP en memoria. Se carga con Store.PutSapAccount.
type SapAccountRepo struct{ s *Store }

// NewSapAccountRepository construye el repositorio sobre el store.
func NewSapAccountRepository(s *Store) *SapAccountRepo { return &SapAccountRepo{s: s} }

func (r *SapAccountRepo) GetByCode(_ context.Context, code string) (*entity.SapAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ptrCopy(r.s.sapAccounts[code]), nil
}

func (r *SapAccountRepo) List(_ context.Context, f entity.SapAccountFilter) ([]*entity.SapAccount, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.SapAccount
	for _, a := range r.s.sapAccounts {
		if f.SocietyCode != "" && a.SocietyCode != f.SocietyCode {
			continue
		}
		if matches(f.Search, a.Code, a.Description, a.CUIT) {
			out = append(out, ptrCopy(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, f.Limit, f.Offset), len(out), nil
}

// SapPurchaseOrderRepo espejo de OCs SAP en memoria. Se carga con Store.PutSapPurchaseOrder.
type SapPurchaseOrderRepo struct{ s *Store }

// NewSapPurchaseOrderRepository construye el repositorio sobre el store.
func NewSapPurchaseOrderRepository(s *Store) *SapPurchaseOrderRepo {
	return &SapPurchaseOrderRepo{s: s}
}

func (r *SapPurchaseOrderRepo) GetByNumber(_ context.Context, number string) ([]*entity.SapPurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.SapPurchaseOrder
	for _, po := range r.s.sapOrders {
		if po.Number == number {
			out = append(out, ptrCopy(po))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *SapPurchaseOrderRepo) GetPosition(_ context.Context, number, position string) (*entity.SapPurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ptrCopy(r.s.sapOrders[number+"/"+position]), nil
}

func (r *SapPurchaseOrderRepo) List(_ context.Context, f entity.SapPurchaseOrderFilter) ([]*entity.SapPurchaseOrder, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.SapPurchaseOrder
	for _, po := range r.s.sapOrders {
		switch {
		case f.ProviderCUIT != "" && po.ProviderCUIT != f.ProviderCUIT:
		case f.SocietyCode != "" && po.SocietyCode != f.SocietyCode:
		case f.IssuedFrom != nil && po.IssueDate.Before(*f.IssuedFrom):
		case f.IssuedTo != nil && po.IssueDate.After(*f.IssuedTo):
		default:
			out = append(out, ptrCopy(po))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.IssueDate.Equal(b.IssueDate) {
			return a.IssueDate.After(b.IssueDate)
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.Position < b.Position
	})
	return page(out, f.Limit, f.Offset), len(out), nil
}
