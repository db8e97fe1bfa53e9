package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
)

// ─── Proveedores ─────────────────────────────────────────────────────────────

func TestProvider_CreateNormalizaCUIT(t *testing.T) {
	f := newFixture(t)
	out, err := f.providers.GetByID(context.Background(), f.provider)
	require.NoError(t, err)
	assert.Equal(t, providerCUIT, out.CUIT)
	assert.True(t, out.Active, "sin active explícito el proveedor nace activo")
}

func TestProvider_CUITInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.providers.Create(context.Background(), dto.CreateProviderRequest{BusinessName: "X", CUIT: "20-12345678-0"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "no es una CUIT válida", verr.Fields["cuit"])
}

func TestProvider_CUITDuplicada(t *testing.T) {
	f := newFixture(t)
	_, err := f.providers.Create(context.Background(), dto.CreateProviderRequest{BusinessName: "Copia", CUIT: providerCUIT})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProvider_GetByCUIT(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.providers.GetByCUIT(ctx, "30-70000000-8")
	require.NoError(t, err)
	assert.Equal(t, f.provider, out.ID)

	_, err = f.providers.GetByCUIT(ctx, otherCUIT)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.providers.GetByCUIT(ctx, "123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProvider_ListFiltros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inactive := false
	_, err := f.providers.Create(ctx, dto.CreateProviderRequest{BusinessName: "Servicios del Sur", CUIT: otherCUIT, Active: &inactive})
	require.NoError(t, err)

	out, err := f.providers.List(ctx, dto.ProviderListQuery{Search: "alamo"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Distribuidora Álamo SA", out.Items[0].BusinessName)

	active := true
	out, err = f.providers.List(ctx, dto.ProviderListQuery{Active: &active}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page.Total)

	out, err = f.providers.List(ctx, dto.ProviderListQuery{CUIT: "20-12345678-6"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.False(t, out.Items[0].Active)
}

func TestProvider_DeleteLogico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.providers.Delete(ctx, f.provider))

	_, err := f.providers.GetByID(ctx, f.provider)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.providers.Delete(ctx, f.provider)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Sociedades ──────────────────────────────────────────────────────────────

func TestSociety_CodigoYCUITUnicos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.societies.Create(ctx, dto.SocietyRequest{Code: "s001", CUIT: "27111111117", Description: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.societies.Create(ctx, dto.SocietyRequest{Code: "S002", CUIT: societyCUIT, Description: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	out, err := f.societies.Create(ctx, dto.SocietyRequest{Code: "S002", CUIT: "27111111117", Description: "Otra"})
	require.NoError(t, err)
	assert.Equal(t, "S002", out.Code)
}

func TestSociety_UpdateConservaPropiosValores(t *testing.T) {
	f := newFixture(t)
	out, err := f.societies.Update(context.Background(), f.society, dto.SocietyRequest{Code: " s001 ", CUIT: societyCUIT, Description: "Renombrada"})
	require.NoError(t, err)
	assert.Equal(t, "Renombrada", out.Description)
	assert.Equal(t, "S001", out.Code)
}

func TestSociety_GetByCUIT(t *testing.T) {
	f := newFixture(t)
	out, err := f.societies.GetByCUIT(context.Background(), "30-50000000-3")
	require.NoError(t, err)
	assert.Equal(t, f.society, out.ID)
}

// ─── Asignaciones usuario-sociedad ───────────────────────────────────────────

func TestUserSociety_AssignYListar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.userSocieties.Assign(ctx, dto.AssignSocietyRequest{UserID: testUser, SocietyID: f.society})
	require.NoError(t, err)
	assert.NotZero(t, a.ID)

	_, err = f.userSocieties.Assign(ctx, dto.AssignSocietyRequest{UserID: testUser, SocietyID: f.society})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	mine, err := f.userSocieties.MySocieties(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "S001", mine[0].Code)

	bySociety, err := f.userSocieties.ListBySociety(ctx, f.society)
	require.NoError(t, err)
	assert.Len(t, bySociety, 1)

	ok, err := f.userSocieties.CanAccess(ctx, testUser, f.society)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, f.userSocieties.Remove(ctx, a.ID))
	assert.ErrorIs(t, f.userSocieties.Remove(ctx, a.ID), domain.ErrNotFound)
}

func TestUserSociety_SociedadInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.userSocieties.Assign(context.Background(), dto.AssignSocietyRequest{UserID: testUser, SocietyID: 777})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
