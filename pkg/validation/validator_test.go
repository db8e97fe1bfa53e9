package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

type sample struct {
	Code  string `json:"code" validate:"required,max=3,code"`
	CUIT  string `json:"cuit" validate:"omitempty,cuit"`
	POS   string `json:"point_of_sale" validate:"omitempty,max=5,digits"`
	Email string `json:"email" validate:"omitempty,email"`
	Lines []line `json:"lines" validate:"dive"`
}

type line struct {
	Number string `json:"number" validate:"required"`
}

func TestStruct_Valido(t *testing.T) {
	v := validation.New()
	err := v.Struct(sample{Code: "ARS", CUIT: "20-12345678-6", POS: "0001", Lines: []line{{Number: "45"}}})
	assert.NoError(t, err)
}

func TestStruct_ErroresPorCampoJSON(t *testing.T) {
	v := validation.New()
	err := v.Struct(sample{Code: "", CUIT: "20-12345678-5", POS: "12a", Email: "x", Lines: []line{{}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "es requerido", verr.Fields["code"])
	assert.Equal(t, "no es una CUIT válida", verr.Fields["cuit"])
	assert.Equal(t, "solo admite dígitos", verr.Fields["point_of_sale"])
	assert.Equal(t, "no es un email válido", verr.Fields["email"])
	assert.Equal(t, "es requerido", verr.Fields["lines[0].number"])
}

func TestStruct_MaxYCode(t *testing.T) {
	v := validation.New()
	err := v.Struct(sample{Code: "A B C"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "debe tener como máximo 3 caracteres", verr.Fields["code"])

	err = v.Struct(sample{Code: "A$"})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields["code"], "solo admite letras")
}

type filtro struct {
	From         string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	ProviderCUIT string `query:"provider_cuit" validate:"required"`
	Page         int    `json:"page" query:"pagina" validate:"gte=0"`
}

func TestStruct_NombresDeQuery(t *testing.T) {
	v := validation.New()
	err := v.Struct(filtro{From: "01/05/2024", Page: -1})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "debe tener el formato 2006-01-02", verr.Fields["from"])
	assert.Equal(t, "es requerido", verr.Fields["provider_cuit"])
	assert.Contains(t, verr.Fields, "page", "el tag json tiene prioridad")
	assert.NotContains(t, verr.Fields, "From")
}
