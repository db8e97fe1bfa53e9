package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/cuit"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

// DocumentDeps puertos que necesita DocumentUseCase.
type DocumentDeps struct {
	Documents         repository.DocumentRepository
	Attachments       repository.AttachmentRepository
	Notes             repository.NoteRepository
	PurchaseOrders    repository.PurchaseOrderRepository
	Providers         repository.ProviderRepository
	Societies         repository.SocietyRepository
	DocumentTypes     repository.DocumentTypeRepository
	Currencies        repository.CurrencyRepository
	PaymentTypes      repository.PaymentTypeRepository
	States            repository.StateRepository
	SapPurchaseOrders repository.SapPurchaseOrderRepository
	UnitOfWork        repository.UnitOfWork
	Vouchers          VoucherGenerator
}

// DocumentUseCase precarga, consulta y cambia de estado los documentos.
type DocumentUseCase struct {
	deps     DocumentDeps
	validate *validation.Validator
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(deps DocumentDeps, v *validation.Validator) *DocumentUseCase {
	return &DocumentUseCase{deps: deps, validate: v}
}

// documentHeader campos comunes a alta y modificación, ya validados.
type documentHeader struct {
	ProviderID     int64
	SocietyID      int64
	DocumentTypeID int64
	CurrencyID     int64
	PaymentTypeID  *int64
	PointOfSale    string
	Number         string
	IssueDate      string
	DueDate        string
}

// Create precarga un documento en estado PEN. La nota inicial y las OCs se guardan
// en la misma unidad de trabajo que el documento.
//
// Retorna:
//   - domain.ErrInvalidInput  si la entrada no es válida.
//   - domain.ErrNotFound      si alguna referencia (o una OC en SAP) no existe.
//   - domain.ErrDuplicate     si el proveedor ya tiene el mismo comprobante.
func (uc *DocumentUseCase) Create(ctx context.Context, userID string, in dto.CreateDocumentRequest) (*dto.DocumentDetailResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", in.Amount); err != nil {
		return nil, err
	}
	if err := uniqueLines(in.PurchaseOrders); err != nil {
		return nil, err
	}
	hdr := documentHeader{
		ProviderID: in.ProviderID, SocietyID: in.SocietyID, DocumentTypeID: in.DocumentTypeID,
		CurrencyID: in.CurrencyID, PaymentTypeID: in.PaymentTypeID,
		PointOfSale: in.PointOfSale, Number: in.Number, IssueDate: in.IssueDate, DueDate: in.DueDate,
	}
	issue, due, err := parseDocumentDates(hdr)
	if err != nil {
		return nil, err
	}
	provider, err := uc.checkReferences(ctx, hdr)
	if err != nil {
		return nil, err
	}
	initial, err := uc.deps.States.GetByCode(ctx, entity.StateCodePending)
	if err != nil {
		return nil, err
	}
	if initial == nil {
		return nil, fmt.Errorf("estado inicial %s: %w", entity.StateCodePending, domain.ErrNotFound)
	}
	if err := uc.ensureUniqueNumber(ctx, hdr, 0); err != nil {
		return nil, err
	}
	for _, line := range in.PurchaseOrders {
		if err := checkSapPosition(ctx, uc.deps.SapPurchaseOrders, provider, line.Number, line.Position); err != nil {
			return nil, err
		}
	}

	ts := now()
	doc := &entity.Document{
		ProviderID:     hdr.ProviderID,
		SocietyID:      hdr.SocietyID,
		DocumentTypeID: hdr.DocumentTypeID,
		CurrencyID:     hdr.CurrencyID,
		StateID:        initial.ID,
		PaymentTypeID:  hdr.PaymentTypeID,
		PointOfSale:    padNumber(hdr.PointOfSale, 5),
		Number:         padNumber(hdr.Number, 8),
		IssueDate:      issue,
		DueDate:        due,
		Amount:         in.Amount,
		Description:    strings.TrimSpace(in.Description),
		CreatedBy:      userID,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	err = uc.deps.UnitOfWork.Run(ctx, func(r repository.Repositories) error {
		if err := r.Documents.Create(ctx, doc); err != nil {
			return err
		}
		if text := strings.TrimSpace(in.Note); text != "" {
			note := &entity.Note{DocumentID: doc.ID, Text: text, CreatedBy: userID, CreatedAt: ts}
			if err := r.Notes.Create(ctx, note); err != nil {
				return err
			}
		}
		for _, line := range in.PurchaseOrders {
			po := &entity.PurchaseOrder{
				DocumentID: doc.ID, Number: line.Number, Position: line.Position,
				Amount: line.Amount, CreatedAt: ts,
			}
			if err := r.PurchaseOrders.Create(ctx, po); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, doc.ID)
}

// GetByID devuelve el documento con las descripciones de sus referencias, adjuntos, notas y OCs.
func (uc *DocumentUseCase) GetByID(ctx context.Context, id int64) (*dto.DocumentDetailResponse, error) {
	detail, err := uc.loadDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	attachments, err := uc.deps.Attachments.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	notes, err := uc.deps.Notes.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := uc.deps.PurchaseOrders.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentDetailResponse{
		DocumentResponse: *toDocumentResponse(detail),
		Attachments:      toAttachmentResponses(attachments),
		Notes:            toNoteResponses(notes),
		PurchaseOrders:   toPurchaseOrderResponses(orders),
	}, nil
}

// Update modifica la cabecera de un documento pendiente.
func (uc *DocumentUseCase) Update(ctx context.Context, id int64, in dto.UpdateDocumentRequest) (*dto.DocumentDetailResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", in.Amount); err != nil {
		return nil, err
	}
	hdr := documentHeader{
		ProviderID: in.ProviderID, SocietyID: in.SocietyID, DocumentTypeID: in.DocumentTypeID,
		CurrencyID: in.CurrencyID, PaymentTypeID: in.PaymentTypeID,
		PointOfSale: in.PointOfSale, Number: in.Number, IssueDate: in.IssueDate, DueDate: in.DueDate,
	}
	issue, due, err := parseDocumentDates(hdr)
	if err != nil {
		return nil, err
	}
	current, err := uc.loadDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.StateFinal {
		return nil, fmt.Errorf("documento %d en estado final %s: %w", id, current.StateCode, domain.ErrConflict)
	}
	if _, err := uc.checkReferences(ctx, hdr); err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueNumber(ctx, hdr, id); err != nil {
		return nil, err
	}
	doc := current.Document
	doc.ProviderID = hdr.ProviderID
	doc.SocietyID = hdr.SocietyID
	doc.DocumentTypeID = hdr.DocumentTypeID
	doc.CurrencyID = hdr.CurrencyID
	doc.PaymentTypeID = hdr.PaymentTypeID
	doc.PointOfSale = padNumber(hdr.PointOfSale, 5)
	doc.Number = padNumber(hdr.Number, 8)
	doc.IssueDate = issue
	doc.DueDate = due
	doc.Amount = in.Amount
	doc.Description = strings.TrimSpace(in.Description)
	doc.UpdatedAt = now()
	if err := uc.deps.Documents.Update(ctx, &doc); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// ChangeState mueve el documento al estado indicado. Un documento en estado final no cambia más.
func (uc *DocumentUseCase) ChangeState(ctx context.Context, id int64, in dto.ChangeStateRequest) (*dto.DocumentDetailResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	current, err := uc.loadDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	target, err := uc.deps.States.GetByID(ctx, in.StateID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("estado %d: %w", in.StateID, domain.ErrNotFound)
	}
	if current.StateFinal {
		return nil, fmt.Errorf("documento %d en estado final %s: %w", id, current.StateCode, domain.ErrConflict)
	}
	if target.ID != current.StateID {
		if err := uc.deps.Documents.UpdateState(ctx, id, target.ID, now()); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(ctx, id)
}

// Delete da de baja lógica el documento junto con sus adjuntos.
func (uc *DocumentUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.loadDetail(ctx, id); err != nil {
		return err
	}
	at := now()
	return uc.deps.UnitOfWork.Run(ctx, func(r repository.Repositories) error {
		if err := r.Attachments.DeleteByDocument(ctx, id, at); err != nil {
			return err
		}
		return r.Documents.Delete(ctx, id, at)
	})
}

// List busca documentos con filtros combinables. Un rango con from > to es inválido.
func (uc *DocumentUseCase) List(ctx context.Context, q dto.DocumentListQuery, page dto.PageRequest) (*dto.DocumentListResponse, error) {
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
	number := ""
	if q.Number != "" {
		number = padNumber(q.Number, 8)
	}
	return uc.list(ctx, entity.DocumentFilter{
		ProviderID:     q.ProviderID,
		SocietyID:      q.SocietyID,
		StateID:        q.StateID,
		DocumentTypeID: q.DocumentTypeID,
		ProviderCUIT:   cuit.Normalize(q.ProviderCUIT),
		Number:         number,
		IssuedFrom:     from,
		IssuedTo:       to,
		PendingOnly:    q.PendingOnly,
	}, page)
}

// ListPendingByProvider lista los documentos pendientes de un proveedor existente.
func (uc *DocumentUseCase) ListPendingByProvider(ctx context.Context, providerID int64, page dto.PageRequest) (*dto.DocumentListResponse, error) {
	if err := preparePage(uc.validate, &page); err != nil {
		return nil, err
	}
	provider, err := uc.deps.Providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("proveedor %d: %w", providerID, domain.ErrNotFound)
	}
	return uc.list(ctx, entity.DocumentFilter{ProviderID: providerID, PendingOnly: true}, page)
}

// Voucher genera la constancia PDF del documento. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *DocumentUseCase) Voucher(ctx context.Context, id int64) ([]byte, string, error) {
	detail, err := uc.loadDetail(ctx, id)
	if err != nil {
		return nil, "", err
	}
	orders, err := uc.deps.PurchaseOrders.ListByDocument(ctx, id)
	if err != nil {
		return nil, "", err
	}
	notes, err := uc.deps.Notes.ListByDocument(ctx, id)
	if err != nil {
		return nil, "", err
	}
	v := &Voucher{
		DocumentID:   detail.ID,
		DocumentType: detail.DocumentTypeCode,
		PointOfSale:  detail.PointOfSale,
		Number:       detail.Number,
		IssueDate:    detail.IssueDate,
		DueDate:      detail.DueDate,
		Amount:       detail.Amount,
		CurrencyCode: detail.CurrencyCode,
		StateCode:    detail.StateCode,
		Description:  detail.Description,
		ProviderName: detail.ProviderName,
		ProviderCUIT: detail.ProviderCUIT,
		SocietyCode:  detail.SocietyCode,
		SocietyName:  detail.SocietyName,
		CreatedBy:    detail.CreatedBy,
		CreatedAt:    detail.CreatedAt,
	}
	for _, po := range orders {
		v.PurchaseOrders = append(v.PurchaseOrders, VoucherPurchaseOrder{Number: po.Number, Position: po.Position, Amount: po.Amount})
	}
	for _, n := range notes {
		v.Notes = append(v.Notes, n.Text)
	}
	pdf, err := uc.deps.Vouchers.GenerateVoucher(ctx, v)
	if err != nil {
		return nil, "", fmt.Errorf("generar constancia del documento %d: %w", id, err)
	}
	filename := fmt.Sprintf("constancia_%s_%s-%s.pdf", detail.DocumentTypeCode, detail.PointOfSale, detail.Number)
	return pdf, filename, nil
}

func (uc *DocumentUseCase) list(ctx context.Context, filter entity.DocumentFilter, page dto.PageRequest) (*dto.DocumentListResponse, error) {
	filter.Limit = page.Limit()
	filter.Offset = page.Offset()
	list, total, err := uc.deps.Documents.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDocumentResponse(d))
	}
	out := dto.NewListResponse(items, page, total)
	return &out, nil
}

func (uc *DocumentUseCase) loadDetail(ctx context.Context, id int64) (*entity.DocumentDetail, error) {
	detail, err := uc.deps.Documents.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("documento %d: %w", id, domain.ErrNotFound)
	}
	return detail, nil
}

// checkReferences verifica que existan todas las entidades referenciadas y devuelve el proveedor.
func (uc *DocumentUseCase) checkReferences(ctx context.Context, hdr documentHeader) (*entity.Provider, error) {
	provider, err := uc.deps.Providers.GetByID(ctx, hdr.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("proveedor %d: %w", hdr.ProviderID, domain.ErrNotFound)
	}
	if !provider.Active {
		return nil, fmt.Errorf("proveedor %d inactivo: %w", hdr.ProviderID, domain.ErrConflict)
	}
	society, err := uc.deps.Societies.GetByID(ctx, hdr.SocietyID)
	if err != nil {
		return nil, err
	}
	if society == nil {
		return nil, fmt.Errorf("sociedad %d: %w", hdr.SocietyID, domain.ErrNotFound)
	}
	docType, err := uc.deps.DocumentTypes.GetByID(ctx, hdr.DocumentTypeID)
	if err != nil {
		return nil, err
	}
	if docType == nil {
		return nil, fmt.Errorf("tipo de documento %d: %w", hdr.DocumentTypeID, domain.ErrNotFound)
	}
	currency, err := uc.deps.Currencies.GetByID(ctx, hdr.CurrencyID)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, fmt.Errorf("moneda %d: %w", hdr.CurrencyID, domain.ErrNotFound)
	}
	if hdr.PaymentTypeID != nil {
		paymentType, err := uc.deps.PaymentTypes.GetByID(ctx, *hdr.PaymentTypeID)
		if err != nil {
			return nil, err
		}
		if paymentType == nil {
			return nil, fmt.Errorf("tipo de pago %d: %w", *hdr.PaymentTypeID, domain.ErrNotFound)
		}
	}
	return provider, nil
}

func (uc *DocumentUseCase) ensureUniqueNumber(ctx context.Context, hdr documentHeader, selfID int64) error {
	pos, number := padNumber(hdr.PointOfSale, 5), padNumber(hdr.Number, 8)
	other, err := uc.deps.Documents.FindByNumber(ctx, hdr.ProviderID, hdr.DocumentTypeID, pos, number)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return fmt.Errorf("comprobante %s-%s del proveedor %d: %w", pos, number, hdr.ProviderID, domain.ErrDuplicate)
	}
	return nil
}

// checkSapPosition verifica que la posición de OC exista en SAP para la CUIT del proveedor.
func checkSapPosition(ctx context.Context, repo repository.SapPurchaseOrderRepository, provider *entity.Provider, number, position string) error {
	po, err := repo.GetPosition(ctx, number, position)
	if err != nil {
		return err
	}
	if po == nil || po.ProviderCUIT != provider.CUIT {
		return fmt.Errorf("orden de compra %s/%s para la CUIT %s: %w", number, position, cuit.Format(provider.CUIT), domain.ErrNotFound)
	}
	return nil
}

func parseDocumentDates(hdr documentHeader) (issue time.Time, due *time.Time, err error) {
	issue, err = parseDate("issue_date", hdr.IssueDate)
	if err != nil {
		return issue, nil, err
	}
	due, err = parseOptionalDate("due_date", hdr.DueDate)
	if err != nil {
		return issue, nil, err
	}
	if due != nil && due.Before(issue) {
		return issue, nil, domain.NewValidationError("due_date", "no puede ser anterior a issue_date")
	}
	return issue, due, nil
}

// uniqueLines rechaza la misma posición de OC repetida en el alta.
func uniqueLines(lines []dto.PurchaseOrderRequest) error {
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		key := l.Number + "/" + l.Position
		if _, ok := seen[key]; ok {
			return domain.NewValidationError(fmt.Sprintf("purchase_orders[%d]", i), "posición repetida")
		}
		seen[key] = struct{}{}
		if err := requirePositive(fmt.Sprintf("purchase_orders[%d].amount", i), l.Amount); err != nil {
			return err
		}
	}
	return nil
}

// padNumber completa con ceros a la izquierda: punto de venta 5 dígitos, número 8.
func padNumber(s string, width int) string {
	s = strings.TrimSpace(s)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func toDocumentResponse(d *entity.DocumentDetail) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:               d.ID,
		ProviderID:       d.ProviderID,
		ProviderName:     d.ProviderName,
		ProviderCUIT:     d.ProviderCUIT,
		SocietyID:        d.SocietyID,
		SocietyCode:      d.SocietyCode,
		SocietyName:      d.SocietyName,
		DocumentTypeID:   d.DocumentTypeID,
		DocumentTypeCode: d.DocumentTypeCode,
		CurrencyID:       d.CurrencyID,
		CurrencyCode:     d.CurrencyCode,
		StateID:          d.StateID,
		StateCode:        d.StateCode,
		Pending:          !d.StateFinal,
		PaymentTypeID:    d.PaymentTypeID,
		PointOfSale:      d.PointOfSale,
		Number:           d.Number,
		IssueDate:        formatDate(d.IssueDate),
		DueDate:          formatOptionalDate(d.DueDate),
		Amount:           d.Amount.StringFixed(2),
		Description:      d.Description,
		CreatedBy:        d.CreatedBy,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
