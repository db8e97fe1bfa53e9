package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/infrastructure/memory"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

func TestCurrency_CreateNormalizaCodigo(t *testing.T) {
	f := newFixture(t)
	out, err := f.currencies.Create(context.Background(), dto.CurrencyRequest{Code: " usd ", Description: "Dólar", Symbol: "U$S"})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "USD", out.Code)
}

func TestCurrency_CreateDuplicado(t *testing.T) {
	f := newFixture(t)
	_, err := f.currencies.Create(context.Background(), dto.CurrencyRequest{Code: "ARS", Description: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.True(t, domain.IsConflict(err))
}

func TestCurrency_CreateInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.currencies.Create(context.Background(), dto.CurrencyRequest{Code: "PESOS", Description: ""})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "code")
	assert.Contains(t, verr.Fields, "description")
}

func TestCurrency_GetByIDInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.currencies.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCurrency_UpdateACodigoExistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	usd, err := f.currencies.Create(ctx, dto.CurrencyRequest{Code: "USD", Description: "Dólar"})
	require.NoError(t, err)

	_, err = f.currencies.Update(ctx, usd.ID, dto.CurrencyRequest{Code: "ARS", Description: "Dólar"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	out, err := f.currencies.Update(ctx, usd.ID, dto.CurrencyRequest{Code: "USD", Description: "Dólar estadounidense"})
	require.NoError(t, err)
	assert.Equal(t, "Dólar estadounidense", out.Description)
}

func TestCurrency_DeleteEnUso(t *testing.T) {
	f := newFixture(t)
	f.createDocument(t, "1")

	err := f.currencies.Delete(context.Background(), f.ars)
	assert.ErrorIs(t, err, domain.ErrInUse)
}

func TestCatalog_ListPaginado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, code := range []string{"EUR", "USD", "BRL"} {
		_, err := f.currencies.Create(ctx, dto.CurrencyRequest{Code: code, Description: "Moneda " + code})
		require.NoError(t, err)
	}

	out, err := f.currencies.List(ctx, dto.CatalogListQuery{}, dto.PageRequest{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Page)
	assert.Equal(t, 3, out.Page.PageSize)
	assert.Equal(t, 4, out.Page.Total)
	assert.Equal(t, 2, out.Page.TotalPages)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "USD", out.Items[0].Code)
}

func TestCatalog_ListValoresPorDefecto(t *testing.T) {
	f := newFixture(t)
	out, err := f.documentTypes.List(context.Background(), dto.CatalogListQuery{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page.Page)
	assert.Equal(t, dto.DefaultPageSize, out.Page.PageSize)
	assert.Len(t, out.Items, 1)
}

func TestCatalog_ListPaginaInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.paymentTypes.List(context.Background(), dto.CatalogListQuery{}, dto.PageRequest{Page: 1, PageSize: 500})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalog_ListBuscaSinAcentos(t *testing.T) {
	f := newFixture(t)
	out, err := f.currencies.List(context.Background(), dto.CatalogListQuery{Search: "ARGENTINO"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "ARS", out.Items[0].Code)
}

func TestState_ReservadoNoSeRenombraNiElimina(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.states.Update(ctx, f.pen, dto.StateRequest{Code: "NEW", Description: "Nuevo"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.states.Update(ctx, f.pen, dto.StateRequest{Code: "PEN", Description: "Pendiente", IsFinal: true})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = f.states.Delete(ctx, f.pen)
	assert.ErrorIs(t, err, domain.ErrConflict)

	out, err := f.states.Update(ctx, f.pen, dto.StateRequest{Code: "pen", Description: "Pendiente de revisión"})
	require.NoError(t, err)
	assert.Equal(t, "Pendiente de revisión", out.Description)
}

func TestState_DeleteLibre(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.states.Delete(ctx, f.apr))

	_, err := f.states.GetByID(ctx, f.apr)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentType_CreditNote(t *testing.T) {
	f := newFixture(t)
	out, err := f.documentTypes.Create(context.Background(), dto.DocumentTypeRequest{Code: "NC", Description: "Nota de crédito", IsCreditNote: true})
	require.NoError(t, err)
	assert.True(t, out.IsCreditNote)
}

func TestCatalog_UpdateRecortaCodigo(t *testing.T) {
	f := newFixture(t)
	out, err := f.paymentTypes.Update(context.Background(), f.transfer, dto.PaymentTypeRequest{Code: "  ch ", Description: "Cheque"})
	require.NoError(t, err)
	assert.Equal(t, "CH", out.Code)

	st, err := f.states.Create(context.Background(), dto.StateRequest{Code: "\trev\n", Description: "En revisión"})
	require.NoError(t, err)
	assert.Equal(t, "REV", st.Code)
}

func TestState_UpdateNoCreaInicialFinal(t *testing.T) {
	states := usecase.NewStateUseCase(memory.NewSet().States, validation.New())
	ctx := context.Background()
	rev, err := states.Create(ctx, dto.StateRequest{Code: "REV", Description: "En revisión"})
	require.NoError(t, err)

	_, err = states.Update(ctx, rev.ID, dto.StateRequest{Code: "pen", Description: "Pendiente", IsFinal: true})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "is_final")

	still, err := states.GetByID(ctx, rev.ID)
	require.NoError(t, err)
	assert.Equal(t, "REV", still.Code)

	out, err := states.Update(ctx, rev.ID, dto.StateRequest{Code: "pen", Description: "Pendiente"})
	require.NoError(t, err)
	assert.Equal(t, "PEN", out.Code)
	assert.False(t, out.IsFinal)
}
