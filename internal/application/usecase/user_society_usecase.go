package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

// UserSocietyUseCase administra qué sociedades puede operar cada usuario.
type UserSocietyUseCase struct {
	repo      repository.UserSocietyRepository
	societies repository.SocietyRepository
	validate  *validation.Validator
}

// NewUserSocietyUseCase construye el caso de uso.
func NewUserSocietyUseCase(repo repository.UserSocietyRepository, societies repository.SocietyRepository, v *validation.Validator) *UserSocietyUseCase {
	return &UserSocietyUseCase{repo: repo, societies: societies, validate: v}
}

// Assign habilita al usuario sobre la sociedad. La sociedad debe existir y el par no debe repetirse.
func (uc *UserSocietyUseCase) Assign(ctx context.Context, in dto.AssignSocietyRequest) (*dto.AssignmentResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	userID := strings.TrimSpace(in.UserID)
	if err := uc.ensureSociety(ctx, in.SocietyID); err != nil {
		return nil, err
	}
	exists, err := uc.repo.Exists(ctx, userID, in.SocietyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("usuario %s ya asignado a la sociedad %d: %w", userID, in.SocietyID, domain.ErrDuplicate)
	}
	assignment := &entity.UserSocietyAssignment{UserID: userID, SocietyID: in.SocietyID, CreatedAt: now()}
	if err := uc.repo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

// ListByUser lista las asignaciones de un usuario.
func (uc *UserSocietyUseCase) ListByUser(ctx context.Context, userID string) ([]dto.AssignmentResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidationError("user_id", "es requerido")
	}
	list, err := uc.repo.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	return toAssignmentResponses(list), nil
}

// ListBySociety lista los usuarios asignados a una sociedad.
func (uc *UserSocietyUseCase) ListBySociety(ctx context.Context, societyID int64) ([]dto.AssignmentResponse, error) {
	if err := uc.ensureSociety(ctx, societyID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	return toAssignmentResponses(list), nil
}

// MySocieties devuelve las sociedades vigentes del usuario autenticado.
func (uc *UserSocietyUseCase) MySocieties(ctx context.Context, userID string) ([]dto.SocietyResponse, error) {
	list, err := uc.repo.ListSocietiesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SocietyResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSocietyResponse(s))
	}
	return out, nil
}

// CanAccess informa si el usuario tiene asignada la sociedad.
func (uc *UserSocietyUseCase) CanAccess(ctx context.Context, userID string, societyID int64) (bool, error) {
	return uc.repo.Exists(ctx, userID, societyID)
}

// Remove elimina una asignación.
func (uc *UserSocietyUseCase) Remove(ctx context.Context, id int64) error {
	assignment, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if assignment == nil {
		return fmt.Errorf("asignación %d: %w", id, domain.ErrNotFound)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UserSocietyUseCase) ensureSociety(ctx context.Context, id int64) error {
	society, err := uc.societies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if society == nil {
		return fmt.Errorf("sociedad %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func toAssignmentResponse(a *entity.UserSocietyAssignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{ID: a.ID, UserID: a.UserID, SocietyID: a.SocietyID, CreatedAt: a.CreatedAt}
}

func toAssignmentResponses(list []*entity.UserSocietyAssignment) []dto.AssignmentResponse {
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAssignmentResponse(a))
	}
	return out
}
