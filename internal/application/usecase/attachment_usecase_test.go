package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/infrastructure/memory"
)

func uploadText(t *testing.T, f *fixture, documentID int64, name, content string) *dto.AttachmentResponse {
	t.Helper()
	out, err := f.attachments.Upload(context.Background(), testUser, documentID,
		dto.UploadAttachmentRequest{FileName: name, ContentType: "text/plain", Size: int64(len(content))},
		strings.NewReader(content))
	require.NoError(t, err)
	return out
}

// ─── Adjuntos ────────────────────────────────────────────────────────────────

func TestAttachment_UploadYDescargar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.createDocument(t, "1")

	att := uploadText(t, f, doc.ID, `C:\escaneos\factura.TXT`, "hola")
	assert.Equal(t, "factura.TXT", att.FileName)
	assert.Equal(t, int64(4), att.Size)

	meta, rc, err := f.attachments.Download(ctx, doc.ID, att.ID)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hola", string(b))
	assert.Equal(t, "text/plain", meta.ContentType)

	list, err := f.attachments.List(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAttachment_DetectaTipo(t *testing.T) {
	f := newFixture(t)
	doc := f.createDocument(t, "1")
	content := "%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"

	out, err := f.attachments.Upload(context.Background(), testUser, doc.ID,
		dto.UploadAttachmentRequest{FileName: "f.pdf", Size: int64(len(content))}, strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
}

func TestAttachment_SuperaTamanoMaximo(t *testing.T) {
	f := newFixture(t)
	doc := f.createDocument(t, "1")
	big := strings.Repeat("x", maxAttachmentLen+1)

	_, err := f.attachments.Upload(context.Background(), testUser, doc.ID,
		dto.UploadAttachmentRequest{FileName: "big.txt", Size: int64(len(big))}, strings.NewReader(big))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "file")
	assert.Zero(t, f.blobs.count())
}

func TestAttachment_DocumentoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.attachments.Upload(context.Background(), testUser, 9999,
		dto.UploadAttachmentRequest{FileName: "a.txt", Size: 1}, strings.NewReader("a"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// failingAttachments simula un error al registrar los metadatos.
type failingAttachments struct{ *memory.AttachmentRepo }

func (failingAttachments) Create(context.Context, *entity.Attachment) error {
	return errors.New("insert attachment: conexión cerrada")
}

func TestAttachment_BorraArchivoSiFallaElRegistro(t *testing.T) {
	f := newFixture(t)
	doc := f.createDocument(t, "1")
	uc := usecase.NewAttachmentUseCase(failingAttachments{f.set.Attachments}, f.set.Documents, f.blobs, maxAttachmentLen, f.v)

	_, err := uc.Upload(context.Background(), testUser, doc.ID,
		dto.UploadAttachmentRequest{FileName: "a.txt", ContentType: "text/plain", Size: 1}, strings.NewReader("a"))
	require.Error(t, err)
	assert.Zero(t, f.blobs.count(), "no deben quedar archivos huérfanos")
}

func TestAttachment_DeleteYOtroDocumento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.createDocument(t, "1")
	other := f.createDocument(t, "2")
	att := uploadText(t, f, doc.ID, "a.txt", "a")

	assert.ErrorIs(t, f.attachments.Delete(ctx, other.ID, att.ID), domain.ErrNotFound)

	require.NoError(t, f.attachments.Delete(ctx, doc.ID, att.ID))
	assert.Zero(t, f.blobs.count())
	_, _, err := f.attachments.Download(ctx, doc.ID, att.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Notas ───────────────────────────────────────────────────────────────────

func TestNote_AddListarRecientePrimero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.createDocument(t, "1")

	first, err := f.notes.Add(ctx, testUser, doc.ID, dto.NoteRequest{Text: "primera"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = f.notes.Add(ctx, testUser, doc.ID, dto.NoteRequest{Text: "segunda"})
	require.NoError(t, err)

	list, err := f.notes.List(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "segunda", list[0].Text)

	require.NoError(t, f.notes.Delete(ctx, doc.ID, first.ID))
	assert.ErrorIs(t, f.notes.Delete(ctx, doc.ID, first.ID), domain.ErrNotFound)
}

func TestNote_TextoVacio(t *testing.T) {
	f := newFixture(t)
	doc := f.createDocument(t, "1")
	_, err := f.notes.Add(context.Background(), testUser, doc.ID, dto.NoteRequest{Text: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Órdenes de compra asociadas ─────────────────────────────────────────────

func TestPurchaseOrder_AddValidaContraSAP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.createDocument(t, "1")
	line := dto.PurchaseOrderRequest{Number: "4500000001", Position: "10", Amount: decimal.NewFromInt(100)}

	out, err := f.orders.Add(ctx, doc.ID, line)
	require.NoError(t, err)
	assert.Equal(t, "100.00", out.Amount)

	_, err = f.orders.Add(ctx, doc.ID, line)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.orders.Add(ctx, doc.ID, dto.PurchaseOrderRequest{Number: "4500000099", Position: "10", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "la OC pertenece a otro proveedor")

	_, err = f.orders.Add(ctx, doc.ID, dto.PurchaseOrderRequest{Number: "4500000001", Position: "99", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.orders.List(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.orders.Remove(ctx, doc.ID, out.ID))
	assert.ErrorIs(t, f.orders.Remove(ctx, doc.ID, out.ID), domain.ErrNotFound)
}

// ─── Datos SAP ───────────────────────────────────────────────────────────────

func TestSap_PurchaseOrdersPorCUITYRango(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.sap.ListPurchaseOrders(ctx, dto.SapPurchaseOrderQuery{ProviderCUIT: "30-70000000-8"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total)

	out, err = f.sap.ListPurchaseOrders(ctx, dto.SapPurchaseOrderQuery{ProviderCUIT: otherCUIT, From: "2024-05-01", To: "2024-05-31"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, out.Page.Total)

	_, err = f.sap.ListPurchaseOrders(ctx, dto.SapPurchaseOrderQuery{}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la CUIT del proveedor es obligatoria")

	positions, err := f.sap.GetPurchaseOrder(ctx, "4500000001")
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "10", positions[0].Position)

	_, err = f.sap.GetPurchaseOrder(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSap_Accounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.set.Store.PutSapAccount(entity.SapAccount{Code: "100200", Description: "Proveedores del exterior", SocietyCode: "S001", CUIT: providerCUIT})
	f.set.Store.PutSapAccount(entity.SapAccount{Code: "100300", Description: "Acreedores varios", SocietyCode: "S002"})

	out, err := f.sap.ListAccounts(ctx, dto.SapAccountQuery{SocietyCode: "s001"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "100200", out.Items[0].Code)

	out, err = f.sap.ListAccounts(ctx, dto.SapAccountQuery{Search: "ACREEDORES"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page.Total)

	acc, err := f.sap.GetAccount(ctx, "100300")
	require.NoError(t, err)
	assert.Equal(t, "S002", acc.SocietyCode)

	_, err = f.sap.GetAccount(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
