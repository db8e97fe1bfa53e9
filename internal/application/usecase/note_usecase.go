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

// NoteUseCase observaciones sobre documentos.
type NoteUseCase struct {
	repo      repository.NoteRepository
	documents repository.DocumentRepository
	validate  *validation.Validator
}

// NewNoteUseCase construye el caso de uso.
func NewNoteUseCase(repo repository.NoteRepository, documents repository.DocumentRepository, v *validation.Validator) *NoteUseCase {
	return &NoteUseCase{repo: repo, documents: documents, validate: v}
}

// Add agrega una nota al documento.
func (uc *NoteUseCase) Add(ctx context.Context, userID string, documentID int64, in dto.NoteRequest) (*dto.NoteResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.NewValidationError("text", "es requerido")
	}
	if err := uc.ensureDocument(ctx, documentID); err != nil {
		return nil, err
	}
	note := &entity.Note{DocumentID: documentID, Text: text, CreatedBy: userID, CreatedAt: now()}
	if err := uc.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// List devuelve las notas del documento, la más reciente primero.
func (uc *NoteUseCase) List(ctx context.Context, documentID int64) ([]dto.NoteResponse, error) {
	if err := uc.ensureDocument(ctx, documentID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return toNoteResponses(list), nil
}

// Delete elimina una nota del documento.
func (uc *NoteUseCase) Delete(ctx context.Context, documentID, id int64) error {
	note, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if note == nil || note.DocumentID != documentID {
		return fmt.Errorf("nota %d del documento %d: %w", id, documentID, domain.ErrNotFound)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *NoteUseCase) ensureDocument(ctx context.Context, id int64) error {
	doc, err := uc.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("documento %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{ID: n.ID, DocumentID: n.DocumentID, Text: n.Text, CreatedBy: n.CreatedBy, CreatedAt: n.CreatedAt}
}

func toNoteResponses(list []*entity.Note) []dto.NoteResponse {
	out := make([]dto.NoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, *toNoteResponse(n))
	}
	return out
}
