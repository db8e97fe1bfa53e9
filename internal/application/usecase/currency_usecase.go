package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/textnorm"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

// CurrencyUseCase aplica reglas de negocio para monedas.
type CurrencyUseCase struct {
	repo     repository.CurrencyRepository
	validate *validation.Validator
}

// NewCurrencyUseCase construye el caso de uso con el puerto de persistencia.
func NewCurrencyUseCase(repo repository.CurrencyRepository, v *validation.Validator) *CurrencyUseCase {
	return &CurrencyUseCase{repo: repo, validate: v}
}

// Create da de alta una moneda. Devuelve domain.ErrDuplicate si el código ya existe.
func (uc *CurrencyUseCase) Create(ctx context.Context, in dto.CurrencyRequest) (*dto.CurrencyResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	code := textnorm.Code(in.Code)
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("moneda %s: %w", code, domain.ErrDuplicate)
	}
	ts := now()
	currency := &entity.Currency{
		Code:        code,
		Description: in.Description,
		Symbol:      in.Symbol,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := uc.repo.Create(ctx, currency); err != nil {
		return nil, err
	}
	return toCurrencyResponse(currency), nil
}

// GetByID obtiene una moneda por ID.
func (uc *CurrencyUseCase) GetByID(ctx context.Context, id int64) (*dto.CurrencyResponse, error) {
	currency, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCurrencyResponse(currency), nil
}

// List lista monedas con búsqueda por código o descripción.
func (uc *CurrencyUseCase) List(ctx context.Context, q dto.CatalogListQuery, page dto.PageRequest) (*dto.CurrencyListResponse, error) {
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
	items := make([]dto.CurrencyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCurrencyResponse(c))
	}
	out := dto.NewListResponse(items, page, total)
	return &out, nil
}

// Update modifica una moneda. Cambiar el código a uno existente devuelve domain.ErrDuplicate.
func (uc *CurrencyUseCase) Update(ctx context.Context, id int64, in dto.CurrencyRequest) (*dto.CurrencyResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	currency, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	code := textnorm.Code(in.Code)
	if code != currency.Code {
		other, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, fmt.Errorf("moneda %s: %w", code, domain.ErrDuplicate)
		}
	}
	currency.Code = code
	currency.Description = in.Description
	currency.Symbol = in.Symbol
	currency.UpdatedAt = now()
	if err := uc.repo.Update(ctx, currency); err != nil {
		return nil, err
	}
	return toCurrencyResponse(currency), nil
}

// Delete elimina una moneda. Si está referenciada por documentos devuelve domain.ErrInUse.
func (uc *CurrencyUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CurrencyUseCase) load(ctx context.Context, id int64) (*entity.Currency, error) {
	currency, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, fmt.Errorf("moneda %d: %w", id, domain.ErrNotFound)
	}
	return currency, nil
}

func toCurrencyResponse(c *entity.Currency) *dto.CurrencyResponse {
	return &dto.CurrencyResponse{
		ID:          c.ID,
		Code:        c.Code,
		Description: c.Description,
		Symbol:      c.Symbol,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
