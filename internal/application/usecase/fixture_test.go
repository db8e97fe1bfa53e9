package usecase_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/infrastructure/memory"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: repositorios en memoria con catálogos mínimos cargados
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUser         = "jperez"
	providerCUIT     = "30700000008"
	otherCUIT        = "20123456786"
	societyCUIT      = "30500000003"
	maxAttachmentLen = 1024
)

type fixture struct {
	set   *memory.Set
	blobs *fakeBlobStore
	v     *validation.Validator

	currencies    *usecase.CurrencyUseCase
	documentTypes *usecase.DocumentTypeUseCase
	paymentTypes  *usecase.PaymentTypeUseCase
	states        *usecase.StateUseCase
	providers     *usecase.ProviderUseCase
	societies     *usecase.SocietyUseCase
	userSocieties *usecase.UserSocietyUseCase
	documents     *usecase.DocumentUseCase
	attachments   *usecase.AttachmentUseCase
	notes         *usecase.NoteUseCase
	orders        *usecase.PurchaseOrderUseCase
	sap           *usecase.SapUseCase

	// datos sembrados
	ars, fc, pen, apr, transfer int64
	provider, society           int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	set := memory.NewSet()
	v := validation.New()
	blobs := newFakeBlobStore()
	f := &fixture{set: set, blobs: blobs, v: v}

	f.currencies = usecase.NewCurrencyUseCase(set.Currencies, v)
	f.documentTypes = usecase.NewDocumentTypeUseCase(set.DocumentTypes, v)
	f.paymentTypes = usecase.NewPaymentTypeUseCase(set.PaymentTypes, v)
	f.states = usecase.NewStateUseCase(set.States, v)
	f.providers = usecase.NewProviderUseCase(set.Providers, v)
	f.societies = usecase.NewSocietyUseCase(set.Societies, v)
	f.userSocieties = usecase.NewUserSocietyUseCase(set.UserSocieties, set.Societies, v)
	f.documents = usecase.NewDocumentUseCase(usecase.DocumentDeps{
		Documents:         set.Documents,
		Attachments:       set.Attachments,
		Notes:             set.Notes,
		PurchaseOrders:    set.PurchaseOrders,
		Providers:         set.Providers,
		Societies:         set.Societies,
		DocumentTypes:     set.DocumentTypes,
		Currencies:        set.Currencies,
		PaymentTypes:      set.PaymentTypes,
		States:            set.States,
		SapPurchaseOrders: set.SapPurchaseOrders,
		UnitOfWork:        set.UnitOfWork,
		Vouchers:          fakeVouchers{},
	}, v)
	f.attachments = usecase.NewAttachmentUseCase(set.Attachments, set.Documents, blobs, maxAttachmentLen, v)
	f.notes = usecase.NewNoteUseCase(set.Notes, set.Documents, v)
	f.orders = usecase.NewPurchaseOrderUseCase(set.PurchaseOrders, set.Documents, set.Providers, set.SapPurchaseOrders, v)
	f.sap = usecase.NewSapUseCase(set.SapAccounts, set.SapPurchaseOrders, v)

	ctx := context.Background()
	f.ars = must(f.currencies.Create(ctx, dto.CurrencyRequest{Code: "ars", Description: "Peso argentino", Symbol: "$"})).ID
	f.fc = must(f.documentTypes.Create(ctx, dto.DocumentTypeRequest{Code: "FC", Description: "Factura"})).ID
	f.pen = must(f.states.Create(ctx, dto.StateRequest{Code: "PEN", Description: "Pendiente"})).ID
	f.apr = must(f.states.Create(ctx, dto.StateRequest{Code: "APR", Description: "Aprobado", IsFinal: true})).ID
	f.transfer = must(f.paymentTypes.Create(ctx, dto.PaymentTypeRequest{Code: "TR", Description: "Transferencia"})).ID
	f.provider = must(f.providers.Create(ctx, dto.CreateProviderRequest{BusinessName: "Distribuidora Álamo SA", CUIT: "30-70000000-8"})).ID
	f.society = must(f.societies.Create(ctx, dto.SocietyRequest{Code: "S001", CUIT: societyCUIT, Description: "Sociedad Uno"})).ID

	set.Store.PutSapPurchaseOrder(entity.SapPurchaseOrder{
		Number: "4500000001", Position: "10", SocietyCode: "S001", ProviderCUIT: providerCUIT,
		IssueDate: date("2024-04-01"), Amount: decimal.NewFromInt(500), CurrencyCode: "ARS",
	})
	set.Store.PutSapPurchaseOrder(entity.SapPurchaseOrder{
		Number: "4500000001", Position: "20", SocietyCode: "S001", ProviderCUIT: providerCUIT,
		IssueDate: date("2024-04-01"), Amount: decimal.NewFromInt(300), CurrencyCode: "ARS",
	})
	set.Store.PutSapPurchaseOrder(entity.SapPurchaseOrder{
		Number: "4500000099", Position: "10", SocietyCode: "S001", ProviderCUIT: otherCUIT,
		IssueDate: date("2024-06-01"), Amount: decimal.NewFromInt(50), CurrencyCode: "ARS",
	})
	return f
}

// documentRequest alta válida sobre los datos sembrados.
func (f *fixture) documentRequest(number string) dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		ProviderID:     f.provider,
		SocietyID:      f.society,
		DocumentTypeID: f.fc,
		CurrencyID:     f.ars,
		PointOfSale:    "1",
		Number:         number,
		IssueDate:      "2024-05-10",
		Amount:         decimal.RequireFromString("1250.50"),
	}
}

func (f *fixture) createDocument(t *testing.T, number string) *dto.DocumentDetailResponse {
	t.Helper()
	out, err := f.documents.Create(context.Background(), testUser, f.documentRequest(number))
	require.NoError(t, err)
	return out
}

func must[T any](v *T, err error) *T {
	if err != nil {
		panic(err)
	}
	return v
}

func date(s string) time.Time {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeBlobStore) Save(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = b
	s.types[key] = contentType
	return nil
}

func (s *fakeBlobStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("blob %s: %w", key, domain.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *fakeBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeBlobStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type fakeVouchers struct{}

func (fakeVouchers) GenerateVoucher(_ context.Context, v *usecase.Voucher) ([]byte, error) {
	return []byte(fmt.Sprintf("%%PDF %s %s-%s", v.DocumentType, v.PointOfSale, v.Number)), nil
}
