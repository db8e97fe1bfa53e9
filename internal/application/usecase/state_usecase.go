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

// StateUseCase aplica reglas de negocio para los estados de documento.
// El estado PEN es el inicial de todo documento: no se renombra, no pasa a final y no se elimina.
type StateUseCase struct {
	repo     repository.StateRepository
	validate *validation.Validator
}

// NewStateUseCase construye el caso de uso con el puerto de persistencia.
func NewStateUseCase(repo repository.StateRepository, v *validation.Validator) *StateUseCase {
	return &StateUseCase{repo: repo, validate: v}
}

// Create da de alta un estado. Devuelve domain.ErrDuplicate si el código ya existe.
func (uc *StateUseCase) Create(ctx context.Context, in dto.StateRequest) (*dto.StateResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	code := textnorm.Code(in.Code)
	if code == entity.StateCodePending && in.IsFinal {
		return nil, domain.NewValidationError("is_final", "el estado inicial no puede ser final")
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("estado %s: %w", code, domain.ErrDuplicate)
	}
	ts := now()
	state := &entity.State{
		Code:        code,
		Description: in.Description,
		IsFinal:     in.IsFinal,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := uc.repo.Create(ctx, state); err != nil {
		return nil, err
	}
	return toStateResponse(state), nil
}

// GetByID obtiene un estado por ID.
func (uc *StateUseCase) GetByID(ctx context.Context, id int64) (*dto.StateResponse, error) {
	state, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStateResponse(state), nil
}

// List lista estados con búsqueda por código o descripción.
func (uc *StateUseCase) List(ctx context.Context, q dto.CatalogListQuery, page dto.PageRequest) (*dto.StateListResponse, error) {
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
	items := make([]dto.StateResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStateResponse(s))
	}
	out := dto.NewListResponse(items, page, total)
	return &out, nil
}

// Update modifica un estado. El estado reservado conserva su código y no puede ser final.
func (uc *StateUseCase) Update(ctx context.Context, id int64, in dto.StateRequest) (*dto.StateResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	state, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	code := textnorm.Code(in.Code)
	if state.IsReserved() && (code != state.Code || in.IsFinal) {
		return nil, fmt.Errorf("estado %s es reservado: %w", state.Code, domain.ErrConflict)
	}
	if code == entity.StateCodePending && in.IsFinal {
		return nil, domain.NewValidationError("is_final", "el estado inicial no puede ser final")
	}
	if code != state.Code {
		other, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, fmt.Errorf("estado %s: %w", code, domain.ErrDuplicate)
		}
	}
	state.Code = code
	state.Description = in.Description
	state.IsFinal = in.IsFinal
	state.UpdatedAt = now()
	if err := uc.repo.Update(ctx, state); err != nil {
		return nil, err
	}
	return toStateResponse(state), nil
}

// Delete elimina un estado. El reservado y los referenciados devuelven conflicto.
func (uc *StateUseCase) Delete(ctx context.Context, id int64) error {
	state, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if state.IsReserved() {
		return fmt.Errorf("estado %s es reservado: %w", state.Code, domain.ErrConflict)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *StateUseCase) load(ctx context.Context, id int64) (*entity.State, error) {
	state, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, fmt.Errorf("estado %d: %w", id, domain.ErrNotFound)
	}
	return state, nil
}

func toStateResponse(s *entity.State) *dto.StateResponse {
	return &dto.StateResponse{
		ID:          s.ID,
		Code:        s.Code,
		Description: s.Description,
		IsFinal:     s.IsFinal,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
