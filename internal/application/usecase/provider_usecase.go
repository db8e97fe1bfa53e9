package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/cuit"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/textnorm"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

// ProviderUseCase aplica reglas de negocio para proveedores.
type ProviderUseCase struct {
	repo     repository.ProviderRepository
	validate *validation.Validator
}

// NewProviderUseCase construye el caso de uso con el puerto de persistencia.
func NewProviderUseCase(repo repository.ProviderRepository, v *validation.Validator) *ProviderUseCase {
	return &ProviderUseCase{repo: repo, validate: v}
}

// Create da de alta un proveedor. La CUIT se guarda solo con dígitos y no puede repetirse
// entre proveedores vigentes (domain.ErrDuplicate).
func (uc *ProviderUseCase) Create(ctx context.Context, in dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	taxID := cuit.Normalize(in.CUIT)
	if err := uc.ensureUniqueCUIT(ctx, taxID, 0); err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	ts := now()
	provider := &entity.Provider{
		BusinessName:   strings.TrimSpace(in.BusinessName),
		CUIT:           taxID,
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		SapAccountCode: textnorm.Code(in.SapAccountCode),
		Active:         active,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	if err := uc.repo.Create(ctx, provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *ProviderUseCase) GetByID(ctx context.Context, id int64) (*dto.ProviderResponse, error) {
	provider, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// GetByCUIT busca un proveedor vigente por CUIT (acepta guiones).
func (uc *ProviderUseCase) GetByCUIT(ctx context.Context, value string) (*dto.ProviderResponse, error) {
	if err := cuit.Validate(value); err != nil {
		return nil, domain.NewValidationError("cuit", "no es una CUIT válida")
	}
	provider, err := uc.repo.GetByCUIT(ctx, cuit.Normalize(value))
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("proveedor con CUIT %s: %w", cuit.Format(value), domain.ErrNotFound)
	}
	return toProviderResponse(provider), nil
}

// List lista proveedores filtrando por razón social, CUIT y estado.
func (uc *ProviderUseCase) List(ctx context.Context, q dto.ProviderListQuery, page dto.PageRequest) (*dto.ProviderListResponse, error) {
	if err := preparePage(uc.validate, &page); err != nil {
		return nil, err
	}
	if err := uc.validate.Struct(q); err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, entity.ProviderFilter{
		Search: textnorm.Fold(q.Search),
		CUIT:   cuit.Normalize(q.CUIT),
		Active: q.Active,
		Limit:  page.Limit(),
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProviderResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProviderResponse(p))
	}
	out := dto.NewListResponse(items, page, total)
	return &out, nil
}

// Update modifica un proveedor.
func (uc *ProviderUseCase) Update(ctx context.Context, id int64, in dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	provider, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	taxID := cuit.Normalize(in.CUIT)
	if taxID != provider.CUIT {
		if err := uc.ensureUniqueCUIT(ctx, taxID, id); err != nil {
			return nil, err
		}
	}
	provider.BusinessName = strings.TrimSpace(in.BusinessName)
	provider.CUIT = taxID
	provider.Email = strings.TrimSpace(in.Email)
	provider.Phone = strings.TrimSpace(in.Phone)
	provider.SapAccountCode = textnorm.Code(in.SapAccountCode)
	provider.Active = in.Active
	provider.UpdatedAt = now()
	if err := uc.repo.Update(ctx, provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// Delete da de baja lógica un proveedor. Sus documentos se conservan.
func (uc *ProviderUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id, now())
}

func (uc *ProviderUseCase) ensureUniqueCUIT(ctx context.Context, taxID string, selfID int64) error {
	other, err := uc.repo.GetByCUIT(ctx, taxID)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return fmt.Errorf("proveedor con CUIT %s: %w", cuit.Format(taxID), domain.ErrDuplicate)
	}
	return nil
}

func (uc *ProviderUseCase) load(ctx context.Context, id int64) (*entity.Provider, error) {
	provider, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("proveedor %d: %w", id, domain.ErrNotFound)
	}
	return provider, nil
}

func toProviderResponse(p *entity.Provider) *dto.ProviderResponse {
	return &dto.ProviderResponse{
		ID:             p.ID,
		BusinessName:   p.BusinessName,
		CUIT:           p.CUIT,
		Email:          p.Email,
		Phone:          p.Phone,
		SapAccountCode: p.SapAccountCode,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
