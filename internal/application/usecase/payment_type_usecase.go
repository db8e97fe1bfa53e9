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

// PaymentTypeUseCase aplica reglas de negocio para tipos de pago.
type PaymentTypeUseCase struct {
	repo     repository.PaymentTypeRepository
	validate *validation.Validator
}

// NewPaymentTypeUseCase construye el caso de uso con el puerto de persistencia.
func NewPaymentTypeUseCase(repo repository.PaymentTypeRepository, v *validation.Validator) *PaymentTypeUseCase {
	return &PaymentTypeUseCase{repo: repo, validate: v}
}

// Create da de alta un tipo de pago. Devuelve domain.ErrDuplicate si el código ya existe.
func (uc *PaymentTypeUseCase) Create(ctx context.Context, in dto.PaymentTypeRequest) (*dto.PaymentTypeResponse, error) {
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
		return nil, fmt.Errorf("tipo de pago %s: %w", code, domain.ErrDuplicate)
	}
	ts := now()
	paymentType := &entity.PaymentType{
		Code:        code,
		Description: in.Description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := uc.repo.Create(ctx, paymentType); err != nil {
		return nil, err
	}
	return toPaymentTypeResponse(paymentType), nil
}

// GetByID obtiene un tipo de pago por ID.
func (uc *PaymentTypeUseCase) GetByID(ctx context.Context, id int64) (*dto.PaymentTypeResponse, error) {
	paymentType, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPaymentTypeResponse(paymentType), nil
}

// List lista tipos de pago con búsqueda por código o descripción.
func (uc *PaymentTypeUseCase) List(ctx context.Context, q dto.CatalogListQuery, page dto.PageRequest) (*dto.PaymentTypeListResponse, error) {
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
	items := make([]dto.PaymentTypeResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toPaymentTypeResponse(c))
	}
	out := dto.NewListResponse(items, page, total)
	return &out, nil
}

// Update modifica un tipo de pago. Cambiar el código a uno existente devuelve domain.ErrDuplicate.
func (uc *PaymentTypeUseCase) Update(ctx context.Context, id int64, in dto.PaymentTypeRequest) (*dto.PaymentTypeResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	paymentType, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	code := textnorm.Code(in.Code)
	if code != paymentType.Code {
		other, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, fmt.Errorf("tipo de pago %s: %w", code, domain.ErrDuplicate)
		}
	}
	paymentType.Code = code
	paymentType.Description = in.Description
	paymentType.UpdatedAt = now()
	if err := uc.repo.Update(ctx, paymentType); err != nil {
		return nil, err
	}
	return toPaymentTypeResponse(paymentType), nil
}

// Delete elimina un tipo de pago. Si está referenciada por documentos devuelve domain.ErrInUse.
func (uc *PaymentTypeUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *PaymentTypeUseCase) load(ctx context.Context, id int64) (*entity.PaymentType, error) {
	paymentType, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if paymentType == nil {
		return nil, fmt.Errorf("tipo de pago %d: %w", id, domain.ErrNotFound)
	}
	return paymentType, nil
}

func toPaymentTypeResponse(c *entity.PaymentType) *dto.PaymentTypeResponse {
	return &dto.PaymentTypeResponse{
		ID:          c.ID,
		Code:        c.Code,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
