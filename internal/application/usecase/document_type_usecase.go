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

// DocumentTypeUseCase aplica reglas de negocio para tipos de documento.
type DocumentTypeUseCase struct {
	repo     repository.DocumentTypeRepository
	validate *validation.Validator
}

// NewDocumentTypeUseCase construye el caso de uso con el puerto de persistencia.
func NewDocumentTypeUseCase(repo repository.DocumentTypeRepository, v *validation.Validator) *DocumentTypeUseCase {
	return &DocumentTypeUseCase{repo: repo, validate: v}
}

// Create da de alta un tipo de documento. Devuelve domain.ErrDuplicate si el código ya existe.
func (uc *DocumentTypeUseCase) Create(ctx context.Context, in dto.DocumentTypeRequest) (*dto.DocumentTypeResponse, error) {
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
		return nil, fmt.Errorf("tipo de documento %s: %w", code, domain.ErrDuplicate)
	}
	ts := now()
	documentType := &entity.DocumentType{
		Code:         code,
		Description:  in.Description,
		IsCreditNote: in.IsCreditNote,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := uc.repo.Create(ctx, documentType); err != nil {
		return nil, err
	}
	return toDocumentTypeResponse(documentType), nil
}

// GetByID obtiene un tipo de documento por ID.
func (uc *DocumentTypeUseCase) GetByID(ctx context.Context, id int64) (*dto.DocumentTypeResponse, error) {
	documentType, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDocumentTypeResponse(documentType), nil
}

// List lista tipos de documento con búsqueda por código o descripción.
func (uc *DocumentTypeUseCase) List(ctx context.Context, q dto.CatalogListQuery, page dto.PageRequest) (*dto.DocumentTypeListResponse, error) {
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
	items := make([]dto.DocumentTypeResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toDocumentTypeResponse(c))
	}
	out := dto.NewListResponse(items, page, total)
	return &out, nil
}

// Update modifica un tipo de documento. Cambiar el código a uno existente devuelve domain.ErrDuplicate.
func (uc *DocumentTypeUseCase) Update(ctx context.Context, id int64, in dto.DocumentTypeRequest) (*dto.DocumentTypeResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	documentType, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	code := textnorm.Code(in.Code)
	if code != documentType.Code {
		other, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, fmt.Errorf("tipo de documento %s: %w", code, domain.ErrDuplicate)
		}
	}
	documentType.Code = code
	documentType.Description = in.Description
	documentType.IsCreditNote = in.IsCreditNote
	documentType.UpdatedAt = now()
	if err := uc.repo.Update(ctx, documentType); err != nil {
		return nil, err
	}
	return toDocumentTypeResponse(documentType), nil
}

// Delete elimina un tipo de documento. Si está referenciada por documentos devuelve domain.ErrInUse.
func (uc *DocumentTypeUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *DocumentTypeUseCase) load(ctx context.Context, id int64) (*entity.DocumentType, error) {
	documentType, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if documentType == nil {
		return nil, fmt.Errorf("tipo de documento %d: %w", id, domain.ErrNotFound)
	}
	return documentType, nil
}

func toDocumentTypeResponse(c *entity.DocumentType) *dto.DocumentTypeResponse {
	return &dto.DocumentTypeResponse{
		ID:           c.ID,
		Code:         c.Code,
		Description:  c.Description,
		IsCreditNote: c.IsCreditNote,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
