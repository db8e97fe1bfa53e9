package usecase

import (
	"context"
	"fmt"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

// PurchaseOrderUseCase asocia posiciones de órdenes de compra SAP a documentos.
type PurchaseOrderUseCase struct {
	repo      repository.PurchaseOrderRepository
	documents repository.DocumentRepository
	providers repository.ProviderRepository
	sap       repository.SapPurchaseOrderRepository
	validate  *validation.Validator
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	repo repository.PurchaseOrderRepository,
	documents repository.DocumentRepository,
	providers repository.ProviderRepository,
	sap repository.SapPurchaseOrderRepository,
	v *validation.Validator,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{repo: repo, documents: documents, providers: providers, sap: sap, validate: v}
}

// Add asocia la posición al documento. La posición debe existir en SAP para la CUIT del proveedor
// del documento y no puede estar ya asociada.
func (uc *PurchaseOrderUseCase) Add(ctx context.Context, documentID int64, in dto.PurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", in.Amount); err != nil {
		return nil, err
	}
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	provider, err := uc.providers.GetByID(ctx, doc.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("proveedor %d: %w", doc.ProviderID, domain.ErrNotFound)
	}
	if err := checkSapPosition(ctx, uc.sap, provider, in.Number, in.Position); err != nil {
		return nil, err
	}
	exists, err := uc.repo.Exists(ctx, documentID, in.Number, in.Position)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("orden de compra %s/%s ya asociada al documento %d: %w", in.Number, in.Position, documentID, domain.ErrDuplicate)
	}
	po := &entity.PurchaseOrder{
		DocumentID: documentID,
		Number:     in.Number,
		Position:   in.Position,
		Amount:     in.Amount,
		CreatedAt:  now(),
	}
	if err := uc.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(po), nil
}

// List devuelve las OCs asociadas al documento.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, documentID int64) ([]dto.PurchaseOrderResponse, error) {
	if _, err := uc.loadDocument(ctx, documentID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponses(list), nil
}

// Remove quita una OC del documento.
func (uc *PurchaseOrderUseCase) Remove(ctx context.Context, documentID, id int64) error {
	po, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if po == nil || po.DocumentID != documentID {
		return fmt.Errorf("orden de compra %d del documento %d: %w", id, documentID, domain.ErrNotFound)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *PurchaseOrderUseCase) loadDocument(ctx context.Context, id int64) (*entity.Document, error) {
	doc, err := uc.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("documento %d: %w", id, domain.ErrNotFound)
	}
	return doc, nil
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	return &dto.PurchaseOrderResponse{
		ID:         po.ID,
		DocumentID: po.DocumentID,
		Number:     po.Number,
		Position:   po.Position,
		Amount:     po.Amount.StringFixed(2),
		CreatedAt:  po.CreatedAt,
	}
}

func toPurchaseOrderResponses(list []*entity.PurchaseOrder) []dto.PurchaseOrderResponse {
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, *toPurchaseOrderResponse(po))
	}
	return out
}
