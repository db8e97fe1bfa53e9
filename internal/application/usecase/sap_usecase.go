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

// SapUseCase consulta los datos de referencia espejados desde SAP (solo lectura).
type SapUseCase struct {
	accounts repository.SapAccountRepository
	orders   repository.SapPurchaseOrderRepository
	validate *validation.Validator
}

// NewSapUseCase construye el caso de uso.
func NewSapUseCase(accounts repository.SapAccountRepository, orders repository.SapPurchaseOrderRepository, v *validation.Validator) *SapUseCase {
	return &SapUseCase{accounts: accounts, orders: orders, validate: v}
}

// ListAccounts lista cuentas SAP por sociedad y texto libre.
func (uc *SapUseCase) ListAccounts(ctx context.Context, q dto.SapAccountQuery, page dto.PageRequest) (*dto.SapAccountListResponse, error) {
	if err := preparePage(uc.validate, &page); err != nil {
		return nil, err
	}
	if err := uc.validate.Struct(q); err != nil {
		return nil, err
	}
	list, total, err := uc.accounts.List(ctx, entity.SapAccountFilter{
		SocietyCode: textnorm.Code(q.SocietyCode),
		Search:      textnorm.Fold(q.Search),
		Limit:       page.Limit(),
		Offset:      page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SapAccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toSapAccountResponse(a))
	}
	out := dto.NewListResponse(items, page, total)
	return &out, nil
}

// GetAccount obtiene una cuenta SAP por código.
func (uc *SapUseCase) GetAccount(ctx context.Context, code string) (*dto.SapAccountResponse, error) {
	code = textnorm.Code(code)
	if code == "" {
		return nil, domain.NewValidationError("code", "es requerido")
	}
	account, err := uc.accounts.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("cuenta SAP %s: %w", code, domain.ErrNotFound)
	}
	out := toSapAccountResponse(account)
	return &out, nil
}

// ListPurchaseOrders lista posiciones de OC de un proveedor (CUIT) con rango de fechas y sociedad opcionales.
func (uc *SapUseCase) ListPurchaseOrders(ctx context.Context, q dto.SapPurchaseOrderQuery, page dto.PageRequest) (*dto.SapPurchaseOrderListResponse, error) {
	if err := preparePage(uc.validate, &page); err != nil {
		return nil, err
	}
	if err := uc.validate.Struct(q); err != nil {
		return nil, err
	}
	from, to, err := parseDateRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.orders.List(ctx, entity.SapPurchaseOrderFilter{
		ProviderCUIT: cuit.Normalize(q.ProviderCUIT),
		SocietyCode:  textnorm.Code(q.SocietyCode),
		IssuedFrom:   from,
		IssuedTo:     to,
		Limit:        page.Limit(),
		Offset:       page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SapPurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, toSapPurchaseOrderResponse(po))
	}
	out := dto.NewListResponse(items, page, total)
	return &out, nil
}

// GetPurchaseOrder devuelve todas las posiciones de una OC.
func (uc *SapUseCase) GetPurchaseOrder(ctx context.Context, number string) ([]dto.SapPurchaseOrderResponse, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, domain.NewValidationError("number", "es requerido")
	}
	list, err := uc.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("orden de compra %s: %w", number, domain.ErrNotFound)
	}
	out := make([]dto.SapPurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, toSapPurchaseOrderResponse(po))
	}
	return out, nil
}

func toSapAccountResponse(a *entity.SapAccount) dto.SapAccountResponse {
	return dto.SapAccountResponse{
		Code:        a.Code,
		Description: a.Description,
		SocietyCode: a.SocietyCode,
		CUIT:        a.CUIT,
		Blocked:     a.Blocked,
		SyncedAt:    a.SyncedAt,
	}
}

func toSapPurchaseOrderResponse(po *entity.SapPurchaseOrder) dto.SapPurchaseOrderResponse {
	return dto.SapPurchaseOrderResponse{
		Number:       po.Number,
		Position:     po.Position,
		SocietyCode:  po.SocietyCode,
		ProviderCUIT: po.ProviderCUIT,
		IssueDate:    formatDate(po.IssueDate),
		Amount:       po.Amount.StringFixed(2),
		CurrencyCode: po.CurrencyCode,
		Description:  po.Description,
		SyncedAt:     po.SyncedAt,
	}
}
