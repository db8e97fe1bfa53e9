package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/docker/go-units"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

// sniffLen bytes que se leen para detectar el tipo de contenido.
const sniffLen = 3072

// AttachmentUseCase administra los archivos adjuntos de un documento.
// Los metadatos viven en la base; el contenido en el BlobStore.
type AttachmentUseCase struct {
	repo      repository.AttachmentRepository
	documents repository.DocumentRepository
	store     BlobStore
	maxSize   int64
	validate  *validation.Validator
}

// NewAttachmentUseCase construye el caso de uso. maxSize es el tamaño máximo por archivo en bytes.
func NewAttachmentUseCase(repo repository.AttachmentRepository, documents repository.DocumentRepository, store BlobStore, maxSize int64, v *validation.Validator) *AttachmentUseCase {
	return &AttachmentUseCase{repo: repo, documents: documents, store: store, maxSize: maxSize, validate: v}
}

// Upload guarda el archivo y registra sus metadatos. Si el registro falla el archivo se borra del storage.
func (uc *AttachmentUseCase) Upload(ctx context.Context, userID string, documentID int64, meta dto.UploadAttachmentRequest, content io.Reader) (*dto.AttachmentResponse, error) {
	if err := uc.validate.Struct(meta); err != nil {
		return nil, err
	}
	if uc.maxSize > 0 && meta.Size > uc.maxSize {
		return nil, domain.NewValidationError("file", "supera el tamaño máximo de "+units.HumanSize(float64(uc.maxSize)))
	}
	if err := uc.ensureDocument(ctx, documentID); err != nil {
		return nil, err
	}

	contentType := strings.TrimSpace(meta.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		var err error
		contentType, content, err = sniff(content)
		if err != nil {
			return nil, fmt.Errorf("leer adjunto: %w", err)
		}
	}

	name := path.Base(strings.ReplaceAll(meta.FileName, `\`, "/"))
	key := fmt.Sprintf("documents/%d/%s%s", documentID, uuid.NewString(), strings.ToLower(path.Ext(name)))
	if err := uc.store.Save(ctx, key, content, meta.Size, contentType); err != nil {
		return nil, fmt.Errorf("guardar adjunto: %w", err)
	}

	attachment := &entity.Attachment{
		DocumentID:  documentID,
		FileName:    name,
		ContentType: contentType,
		Size:        meta.Size,
		StorageKey:  key,
		CreatedBy:   userID,
		CreatedAt:   now(),
	}
	if err := uc.repo.Create(ctx, attachment); err != nil {
		if delErr := uc.store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			return nil, errors.Join(err, fmt.Errorf("borrar archivo huérfano %s: %w", key, delErr))
		}
		return nil, err
	}
	return toAttachmentResponse(attachment), nil
}

// List devuelve los adjuntos vigentes del documento.
func (uc *AttachmentUseCase) List(ctx context.Context, documentID int64) ([]dto.AttachmentResponse, error) {
	if err := uc.ensureDocument(ctx, documentID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return toAttachmentResponses(list), nil
}

// Download abre el contenido del adjunto. El caller debe cerrar el reader.
func (uc *AttachmentUseCase) Download(ctx context.Context, documentID, id int64) (*dto.AttachmentResponse, io.ReadCloser, error) {
	attachment, err := uc.load(ctx, documentID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := uc.store.Open(ctx, attachment.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir adjunto %d: %w", id, err)
	}
	return toAttachmentResponse(attachment), rc, nil
}

// Delete da de baja el adjunto y borra su contenido. El borrado del storage es best effort.
func (uc *AttachmentUseCase) Delete(ctx context.Context, documentID, id int64) error {
	attachment, err := uc.load(ctx, documentID, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id, now()); err != nil {
		return err
	}
	_ = uc.store.Delete(ctx, attachment.StorageKey)
	return nil
}

func (uc *AttachmentUseCase) load(ctx context.Context, documentID, id int64) (*entity.Attachment, error) {
	attachment, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attachment == nil || attachment.DocumentID != documentID {
		return nil, fmt.Errorf("adjunto %d del documento %d: %w", id, documentID, domain.ErrNotFound)
	}
	return attachment, nil
}

func (uc *AttachmentUseCase) ensureDocument(ctx context.Context, id int64) error {
	doc, err := uc.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("documento %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// sniff detecta el tipo MIME por contenido y devuelve un reader que conserva los bytes leídos.
func sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	head = head[:n]
	mt := mimetype.Detect(head)
	return mt.String(), io.MultiReader(bytes.NewReader(head), r), nil
}

func toAttachmentResponse(a *entity.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:          a.ID,
		DocumentID:  a.DocumentID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
	}
}

func toAttachmentResponses(list []*entity.Attachment) []dto.AttachmentResponse {
	out := make([]dto.AttachmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAttachmentResponse(a))
	}
	return out
}
