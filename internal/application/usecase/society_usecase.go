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

// SocietyUseCase aplica reglas de negocio para sociedades. Código y CUIT son únicos.
type SocietyUseCase struct {
	repo     repository.SocietyRepository
	validate *validation.Validator
}

// NewSocietyUseCase construye el caso de uso con el puerto de persistencia.
func NewSocietyUseCase(repo repository.SocietyRepository, v *validation.Validator) *SocietyUseCase {
	return &SocietyUseCase{repo: repo, validate: v}
}

// Create da de alta una sociedad.
func (uc *SocietyUseCase) Create(ctx context.Context, in dto.SocietyRequest) (*dto.SocietyResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	code, taxID := textnorm.Code(in.Code), cuit.Normalize(in.CUIT)
	if err := uc.ensureUnique(ctx, code, taxID, 0); err != nil {
		return nil, err
	}
	ts := now()
	society := &entity.Society{
		Code:        code,
		CUIT:        taxID,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := uc.repo.Create(ctx, society); err != nil {
		return nil, err
	}
	return toSocietyResponse(society), nil
}

// GetByID obtiene una sociedad por ID.
func (uc *SocietyUseCase) GetByID(ctx context.Context, id int64) (*dto.SocietyResponse, error) {
	society, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSocietyResponse(society), nil
}

// GetByCUIT busca una sociedad vigente por CUIT.
func (uc *SocietyUseCase) GetByCUIT(ctx context.Context, value string) (*dto.SocietyResponse, error) {
	if err := cuit.Validate(value); err != nil {
		return nil, domain.NewValidationError("cuit", "no es una CUIT válida")
	}
	society, err := uc.repo.GetByCUIT(ctx, cuit.Normalize(value))
	if err != nil {
		return nil, err
	}
	if society == nil {
		return nil, fmt.Errorf("sociedad con CUIT %s: %w", cuit.Format(value), domain.ErrNotFound)
	}
	return toSocietyResponse(society), nil
}

// List lista sociedades con búsqueda por código o descripción.
func (uc *SocietyUseCase) List(ctx context.Context, q dto.CatalogListQuery, page dto.PageRequest) (*dto.SocietyListResponse, error) {
	if err := preparePage(uc.validate, &page); err != nil {
		return nil, err
	}
	if err := uc.validate.Struct(q); err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.ListParams{
		Search: textnorm.Fold(q.Search), Limit: page.Limit(), Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SocietyResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSocietyResponse(s))
	}
	out := dto.NewListResponse(items, page, total)
	return &out, nil
}

// Update modifica una sociedad.
func (uc *SocietyUseCase) Update(ctx context.Context, id int64, in dto.SocietyRequest) (*dto.SocietyResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	society, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	code, taxID := textnorm.Code(in.Code), cuit.Normalize(in.CUIT)
	if err := uc.ensureUnique(ctx, code, taxID, id); err != nil {
		return nil, err
	}
	society.Code = code
	society.CUIT = taxID
	society.Description = strings.TrimSpace(in.Description)
	society.UpdatedAt = now()
	if err := uc.repo.Update(ctx, society); err != nil {
		return nil, err
	}
	return toSocietyResponse(society), nil
}

// Delete da de baja lógica una sociedad.
func (uc *SocietyUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id, now())
}

// ensureUnique verifica código y CUIT contra el resto de las sociedades vigentes.
func (uc *SocietyUseCase) ensureUnique(ctx context.Context, code, taxID string, selfID int64) error {
	byCode, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if byCode != nil && byCode.ID != selfID {
		return fmt.Errorf("sociedad %s: %w", code, domain.ErrDuplicate)
	}
	byCUIT, err := uc.repo.GetByCUIT(ctx, taxID)
	if err != nil {
		return err
	}
	if byCUIT != nil && byCUIT.ID != selfID {
		return fmt.Errorf("sociedad con CUIT %s: %w", cuit.Format(taxID), domain.ErrDuplicate)
	}
	return nil
}

func (uc *SocietyUseCase) load(ctx context.Context, id int64) (*entity.Society, error) {
	society, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if society == nil {
		return nil, fmt.Errorf("sociedad %d: %w", id, domain.ErrNotFound)
	}
	return society, nil
}

func toSocietyResponse(s *entity.Society) *dto.SocietyResponse {
	return &dto.SocietyResponse{
		ID:          s.ID,
		Code:        s.Code,
		CUIT:        s.CUIT,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
