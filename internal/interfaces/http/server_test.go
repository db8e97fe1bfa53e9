package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
	"github.com/amremberto/gecom-following-preload-sub002/internal/infrastructure/memory"
	"github.com/amremberto/gecom-following-preload-sub002/internal/infrastructure/pdf"
	"github.com/amremberto/gecom-following-preload-sub002/internal/infrastructure/storage"
	apphttp "github.com/amremberto/gecom-following-preload-sub002/internal/interfaces/http"
	pkgjwt "github.com/amremberto/gecom-following-preload-sub002/pkg/jwt"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/logger"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de test: router completo sobre repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type server struct {
	t     *testing.T
	app   *fiber.App
	admin string
	oper  string
}

func newServer(t *testing.T) *server {
	t.Helper()
	set := memory.NewSet()
	v := validation.New()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	log := logger.Nop()
	onError := apphttp.ErrorHandler(log)
	app := fiber.New(fiber.Config{ErrorHandler: onError})
	app.Use(apphttp.RequestID(), apphttp.RequestLogger(log, onError), recover.New())

	userSocieties := usecase.NewUserSocietyUseCase(set.UserSocieties, set.Societies, v)
	apphttp.Router(app, apphttp.RouterDeps{
		CurrencyUC:     usecase.NewCurrencyUseCase(set.Currencies, v),
		DocumentTypeUC: usecase.NewDocumentTypeUseCase(set.DocumentTypes, v),
		PaymentTypeUC:  usecase.NewPaymentTypeUseCase(set.PaymentTypes, v),
		StateUC:        usecase.NewStateUseCase(set.States, v),
		ProviderUC:     usecase.NewProviderUseCase(set.Providers, v),
		SocietyUC:      usecase.NewSocietyUseCase(set.Societies, v),
		UserSocietyUC:  userSocieties,
		DocumentUC: usecase.NewDocumentUseCase(usecase.DocumentDeps{
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
			Vouchers:          pdf.NewMarotoVoucherGenerator(),
		}, v),
		AttachmentUC:    usecase.NewAttachmentUseCase(set.Attachments, set.Documents, store, 1024, v),
		NoteUC:          usecase.NewNoteUseCase(set.Notes, set.Documents, v),
		PurchaseOrderUC: usecase.NewPurchaseOrderUseCase(set.PurchaseOrders, set.Documents, set.Providers, set.SapPurchaseOrders, v),
		SapUC:           usecase.NewSapUseCase(set.SapAccounts, set.SapPurchaseOrders, v),
		JWTSecret:       testJWTSecret,
		JWTIssuer:       testIssuer,
	})
	app.Get("/boom", func(c *fiber.Ctx) error { panic("explota") })

	return &server{
		t:     t,
		app:   app,
		admin: token(t, "admin-1", pkgjwt.RoleAdmin),
		oper:  token(t, "oper-1", pkgjwt.RoleOperator),
	}
}

func token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: userID, Role: role}, testIssuer, testTTL)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (s *server) do(method, path, auth string, body any) *http.Response {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	return resp
}

// create hace POST como admin y devuelve el id creado.
func (s *server) create(path string, body any) int64 {
	s.t.Helper()
	resp := s.do(http.MethodPost, path, s.admin, body)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	require.Equal(s.t, http.StatusCreated, resp.StatusCode, string(raw))
	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(raw, &out))
	return out.ID
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func problem(t *testing.T, resp *http.Response, status int) dto.ProblemDetails {
	t.Helper()
	require.Equal(t, status, resp.StatusCode)
	assert.Equal(t, apphttp.ProblemContentType, resp.Header.Get("Content-Type"))
	return decode[dto.ProblemDetails](t, resp)
}

type seed struct {
	provider, society, fc, ars, pen, apr int64
}

func (s *server) seed() seed {
	return seed{
		provider: s.create("/api/v1/providers", dto.CreateProviderRequest{BusinessName: "Distribuidora Álamo SA", CUIT: "30-70000000-8"}),
		society:  s.create("/api/v1/societies", dto.SocietyRequest{Code: "S001", CUIT: "30500000003", Description: "Sociedad Uno"}),
		fc:       s.create("/api/v1/document-types", dto.DocumentTypeRequest{Code: "FC", Description: "Factura"}),
		ars:      s.create("/api/v1/currencies", dto.CurrencyRequest{Code: "ARS", Description: "Peso argentino", Symbol: "$"}),
		pen:      s.create("/api/v1/states", dto.StateRequest{Code: "PEN", Description: "Pendiente"}),
		apr:      s.create("/api/v1/states", dto.StateRequest{Code: "APR", Description: "Aprobado", IsFinal: true}),
	}
}

func (s *server) createDocument(d seed, number string) int64 {
	return s.create("/api/v1/documents", map[string]any{
		"provider_id":      d.provider,
		"society_id":       d.society,
		"document_type_id": d.fc,
		"currency_id":      d.ars,
		"point_of_sale":    "1",
		"number":           number,
		"issue_date":       "2024-05-10",
		"amount":           "1250.50",
		"note":             "recibida por mesa de entradas",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Health y errores genéricos
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_EsPublico(t *testing.T) {
	s := newServer(t)
	resp := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID), "toda respuesta lleva request id")
	body := decode[dto.HealthResponse](t, resp)
	assert.Equal(t, "ok", body.Status)
}

func TestAPI_RequiereToken(t *testing.T) {
	s := newServer(t)
	p := problem(t, s.do(http.MethodGet, "/api/v1/currencies", "", nil), http.StatusUnauthorized)
	assert.Equal(t, "MISSING_TOKEN", p.Code)
}

func TestRutaInexistente_ProblemDetails404(t *testing.T) {
	s := newServer(t)
	p := problem(t, s.do(http.MethodGet, "/no-existe", "", nil), http.StatusNotFound)
	assert.Equal(t, apphttp.CodeNotFound, p.Code)
	assert.Equal(t, "Not Found", p.Title)
}

func TestPanic_Problem500Generico(t *testing.T) {
	s := newServer(t)
	p := problem(t, s.do(http.MethodGet, "/boom", "", nil), http.StatusInternalServerError)
	assert.Equal(t, apphttp.CodeInternal, p.Code)
	assert.NotContains(t, p.Detail, "explota", "el detalle interno no se expone")
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogos_CRUDYErrores(t *testing.T) {
	s := newServer(t)
	id := s.create("/api/v1/currencies", dto.CurrencyRequest{Code: "usd", Description: "Dólar", Symbol: "US$"})

	got := decode[dto.CurrencyResponse](t, s.do(http.MethodGet, fmt.Sprintf("/api/v1/currencies/%d", id), s.oper, nil))
	assert.Equal(t, "USD", got.Code, "el código se normaliza a mayúsculas")

	t.Run("operador no puede crear", func(t *testing.T) {
		p := problem(t, s.do(http.MethodPost, "/api/v1/currencies", s.oper, dto.CurrencyRequest{Code: "EUR", Description: "Euro"}), http.StatusForbidden)
		assert.Equal(t, apphttp.CodeForbidden, p.Code)
	})
	t.Run("código duplicado", func(t *testing.T) {
		p := problem(t, s.do(http.MethodPost, "/api/v1/currencies", s.admin, dto.CurrencyRequest{Code: "USD", Description: "Otro"}), http.StatusConflict)
		assert.Equal(t, apphttp.CodeDuplicate, p.Code)
	})
	t.Run("inexistente", func(t *testing.T) {
		p := problem(t, s.do(http.MethodGet, "/api/v1/currencies/9999", s.oper, nil), http.StatusNotFound)
		assert.Equal(t, apphttp.CodeNotFound, p.Code)
		assert.Equal(t, "/api/v1/currencies/9999", p.Instance)
	})
	t.Run("id no numérico", func(t *testing.T) {
		p := problem(t, s.do(http.MethodGet, "/api/v1/currencies/abc", s.oper, nil), http.StatusBadRequest)
		assert.Equal(t, apphttp.CodeValidation, p.Code)
		assert.Contains(t, p.Errors, "id")
	})
	t.Run("cuerpo inválido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/currencies", strings.NewReader("{no es json"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", s.admin)
		resp, err := s.app.Test(req, -1)
		require.NoError(t, err)
		p := problem(t, resp, http.StatusBadRequest)
		assert.Equal(t, apphttp.CodeInvalidBody, p.Code)
	})

	resp := s.do(http.MethodDelete, fmt.Sprintf("/api/v1/currencies/%d", id), s.admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	problem(t, s.do(http.MethodDelete, fmt.Sprintf("/api/v1/currencies/%d", id), s.admin, nil), http.StatusNotFound)
}

func TestCatalogos_ListadoPaginado(t *testing.T) {
	s := newServer(t)
	for _, code := range []string{"A1", "A2", "A3"} {
		s.create("/api/v1/payment-types", dto.PaymentTypeRequest{Code: code, Description: "Tipo " + code})
	}
	list := decode[dto.PaymentTypeListResponse](t, s.do(http.MethodGet, "/api/v1/payment-types?page=2&page_size=2", s.oper, nil))
	assert.Len(t, list.Items, 1)
	assert.Equal(t, dto.PageResponse{Page: 2, PageSize: 2, Total: 3, TotalPages: 2}, list.Page)

	p := problem(t, s.do(http.MethodGet, "/api/v1/payment-types?page_size=500", s.oper, nil), http.StatusBadRequest)
	assert.Contains(t, p.Errors, "page_size")
}

func TestEstados_PENReservado(t *testing.T) {
	s := newServer(t)
	d := s.seed()
	p := problem(t, s.do(http.MethodDelete, fmt.Sprintf("/api/v1/states/%d", d.pen), s.admin, nil), http.StatusConflict)
	assert.Equal(t, apphttp.CodeConflict, p.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores y sociedades
// ──────────────────────────────────────────────────────────────────────────────

func TestProveedores_ValidacionYBusqueda(t *testing.T) {
	s := newServer(t)
	p := problem(t, s.do(http.MethodPost, "/api/v1/providers", s.admin, dto.CreateProviderRequest{BusinessName: "X", CUIT: "30-70000000-1"}), http.StatusBadRequest)
	assert.Equal(t, apphttp.CodeValidation, p.Code)
	assert.Contains(t, p.Errors, "cuit")

	id := s.create("/api/v1/providers", dto.CreateProviderRequest{BusinessName: "Maderera del Sur", CUIT: "30-70000000-8"})
	got := decode[dto.ProviderResponse](t, s.do(http.MethodGet, "/api/v1/providers/by-cuit/30-70000000-8", s.oper, nil))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "30700000008", got.CUIT)

	list := decode[dto.ProviderListResponse](t, s.do(http.MethodGet, "/api/v1/providers?search=maderera", s.oper, nil))
	require.Len(t, list.Items, 1)
}

func TestSociedades_AccesoPorAsignacion(t *testing.T) {
	s := newServer(t)
	d := s.seed()
	s.createDocument(d, "42")
	path := fmt.Sprintf("/api/v1/societies/%d/documents", d.society)

	p := problem(t, s.do(http.MethodGet, path, s.oper, nil), http.StatusForbidden)
	assert.Equal(t, apphttp.CodeForbidden, p.Code)
	problem(t, s.do(http.MethodGet, fmt.Sprintf("/api/v1/documents?society_id=%d", d.society), s.oper, nil), http.StatusForbidden)

	s.create("/api/v1/assignments", dto.AssignSocietyRequest{UserID: "oper-1", SocietyID: d.society})
	problem(t, s.do(http.MethodPost, "/api/v1/assignments", s.admin, dto.AssignSocietyRequest{UserID: "oper-1", SocietyID: d.society}), http.StatusConflict)

	list := decode[dto.DocumentListResponse](t, s.do(http.MethodGet, path, s.oper, nil))
	assert.Equal(t, 1, list.Page.Total)

	mine := decode[[]dto.SocietyResponse](t, s.do(http.MethodGet, "/api/v1/me/societies", s.oper, nil))
	require.Len(t, mine, 1)
	assert.Equal(t, "S001", mine[0].Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestDocumentos_CicloCompleto(t *testing.T) {
	s := newServer(t)
	d := s.seed()
	id := s.createDocument(d, "42")
	path := fmt.Sprintf("/api/v1/documents/%d", id)

	detail := decode[dto.DocumentDetailResponse](t, s.do(http.MethodGet, path, s.oper, nil))
	assert.Equal(t, "00001", detail.PointOfSale)
	assert.Equal(t, "00000042", detail.Number)
	assert.Equal(t, "PEN", detail.StateCode)
	assert.True(t, detail.Pending)
	assert.Equal(t, "admin-1", detail.CreatedBy)
	require.Len(t, detail.Notes, 1)

	t.Run("número duplicado", func(t *testing.T) {
		resp := s.do(http.MethodPost, "/api/v1/documents", s.oper, map[string]any{
			"provider_id": d.provider, "society_id": d.society, "document_type_id": d.fc, "currency_id": d.ars,
			"point_of_sale": "00001", "number": "42", "issue_date": "2024-05-11", "amount": "10",
		})
		p := problem(t, resp, http.StatusConflict)
		assert.Equal(t, apphttp.CodeDuplicate, p.Code)
	})

	pending := decode[dto.DocumentListResponse](t, s.do(http.MethodGet, fmt.Sprintf("/api/v1/providers/%d/pending-documents", d.provider), s.oper, nil))
	assert.Equal(t, 1, pending.Page.Total)

	changed := decode[dto.DocumentDetailResponse](t, s.do(http.MethodPatch, path+"/state", s.oper, dto.ChangeStateRequest{StateID: d.apr}))
	assert.Equal(t, "APR", changed.StateCode)
	assert.False(t, changed.Pending)

	p := problem(t, s.do(http.MethodPatch, path+"/state", s.oper, dto.ChangeStateRequest{StateID: d.pen}), http.StatusConflict)
	assert.Equal(t, apphttp.CodeConflict, p.Code)

	pending = decode[dto.DocumentListResponse](t, s.do(http.MethodGet, fmt.Sprintf("/api/v1/providers/%d/pending-documents", d.provider), s.oper, nil))
	assert.Equal(t, 0, pending.Page.Total)

	resp := s.do(http.MethodGet, path+"/voucher", s.oper, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "constancia_FC_00001-00000042.pdf")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	del := s.do(http.MethodDelete, path, s.oper, nil)
	assert.Equal(t, http.StatusNoContent, del.StatusCode)
	problem(t, s.do(http.MethodGet, path, s.oper, nil), http.StatusNotFound)
}

func TestDocumentos_FiltrosInvalidos(t *testing.T) {
	s := newServer(t)
	p := problem(t, s.do(http.MethodGet, "/api/v1/documents?from=2024-06-01&to=2024-05-01", s.oper, nil), http.StatusBadRequest)
	assert.Contains(t, p.Errors, "from")

	p = problem(t, s.do(http.MethodGet, "/api/v1/documents?from=01/05/2024", s.oper, nil), http.StatusBadRequest)
	assert.Contains(t, p.Errors, "from")
}

func TestDocumentos_ReferenciaInexistente(t *testing.T) {
	s := newServer(t)
	d := s.seed()
	resp := s.do(http.MethodPost, "/api/v1/documents", s.oper, map[string]any{
		"provider_id": 9999, "society_id": d.society, "document_type_id": d.fc, "currency_id": d.ars,
		"point_of_sale": "1", "number": "7", "issue_date": "2024-05-11", "amount": "10",
	})
	p := problem(t, resp, http.StatusNotFound)
	assert.Equal(t, apphttp.CodeNotFound, p.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjuntos y notas
// ──────────────────────────────────────────────────────────────────────────────

func (s *server) upload(documentID int64, filename string, content []byte) *http.Response {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(s.t, err)
	_, err = fw.Write(content)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/documents/%d/attachments", documentID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", s.oper)
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	return resp
}

func TestAdjuntos_SubirDescargarBorrar(t *testing.T) {
	s := newServer(t)
	d := s.seed()
	doc := s.createDocument(d, "42")

	resp := s.upload(doc, "remito.txt", []byte("remito 0001-00001234"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	att := decode[dto.AttachmentResponse](t, resp)
	assert.Equal(t, "remito.txt", att.FileName)
	assert.Equal(t, "oper-1", att.CreatedBy)

	list := decode[[]dto.AttachmentResponse](t, s.do(http.MethodGet, fmt.Sprintf("/api/v1/documents/%d/attachments", doc), s.oper, nil))
	require.Len(t, list, 1)

	path := fmt.Sprintf("/api/v1/documents/%d/attachments/%d", doc, att.ID)
	dl := s.do(http.MethodGet, path, s.oper, nil)
	require.Equal(t, http.StatusOK, dl.StatusCode)
	assert.Contains(t, dl.Header.Get("Content-Disposition"), "remito.txt")
	raw, _ := io.ReadAll(dl.Body)
	dl.Body.Close()
	assert.Equal(t, "remito 0001-00001234", string(raw))

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, path, s.oper, nil).StatusCode)
	problem(t, s.do(http.MethodGet, path, s.oper, nil), http.StatusNotFound)
}

func TestAdjuntos_Errores(t *testing.T) {
	s := newServer(t)
	d := s.seed()
	doc := s.createDocument(d, "42")

	p := problem(t, s.upload(doc, "grande.bin", bytes.Repeat([]byte("x"), 2048)), http.StatusBadRequest)
	assert.Contains(t, p.Errors, "file")

	problem(t, s.upload(9999, "a.txt", []byte("hola")), http.StatusNotFound)

	p = problem(t, s.do(http.MethodPost, fmt.Sprintf("/api/v1/documents/%d/attachments", doc), s.oper, map[string]string{"x": "y"}), http.StatusBadRequest)
	assert.Contains(t, p.Errors, "file")
}

func TestNotas_AltaListadoBaja(t *testing.T) {
	s := newServer(t)
	d := s.seed()
	doc := s.createDocument(d, "42")
	base := fmt.Sprintf("/api/v1/documents/%d/notes", doc)

	resp := s.do(http.MethodPost, base, s.oper, dto.NoteRequest{Text: "falta firma"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	note := decode[dto.NoteResponse](t, resp)

	notes := decode[[]dto.NoteResponse](t, s.do(http.MethodGet, base, s.oper, nil))
	require.Len(t, notes, 2)
	assert.Equal(t, "falta firma", notes[0].Text, "más nuevas primero")

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, fmt.Sprintf("%s/%d", base, note.ID), s.oper, nil).StatusCode)
	problem(t, s.do(http.MethodPost, base, s.oper, dto.NoteRequest{Text: ""}), http.StatusBadRequest)
}

// ──────────────────────────────────────────────────────────────────────────────
// SAP
// ──────────────────────────────────────────────────────────────────────────────

func TestSap_RequiereCUIT(t *testing.T) {
	s := newServer(t)
	p := problem(t, s.do(http.MethodGet, "/api/v1/sap/purchase-orders", s.oper, nil), http.StatusBadRequest)
	assert.Contains(t, p.Errors, "provider_cuit")

	list := decode[dto.SapPurchaseOrderListResponse](t, s.do(http.MethodGet, "/api/v1/sap/purchase-orders?provider_cuit=30700000008", s.oper, nil))
	assert.Empty(t, list.Items)
	problem(t, s.do(http.MethodGet, "/api/v1/sap/accounts/PRV001", s.oper, nil), http.StatusNotFound)
}
