package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows_DecodificaLatin1(t *testing.T) {
	// "Depósito" en ISO-8859-1: ó = 0xF3
	raw := []byte("codigo;descripcion;sociedad;cuit;bloqueada\nPRV001;Dep\xf3sito O'Brien;s001;30-70000000-8;X\n")
	rows, err := readRows(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	accounts, err := parseAccounts(rows)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Depósito O'Brien", accounts[0].Description)
	assert.Equal(t, "S001", accounts[0].SocietyCode)
	assert.Equal(t, "30700000008", accounts[0].CUIT)
	assert.True(t, accounts[0].Blocked)

	var sql strings.Builder
	require.NoError(t, writeAccounts(&sql, accounts))
	assert.Contains(t, sql.String(), "'Depósito O''Brien'")
	assert.Contains(t, sql.String(), "ON CONFLICT (code) DO UPDATE")
}

func TestParseOrders(t *testing.T) {
	rows := [][]string{
		{"4500000001", "10", "S001", "30700000008", "01.04.2024", "1.234,56", "ars", "Tornillos"},
		{"4500000001", "20", "S001", "30700000008", "01.04.2024", "-10,5", "ARS", ""},
	}
	orders, err := parseOrders(rows)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "1234.56", orders[0].Amount.String())
	assert.Equal(t, "-10.5", orders[1].Amount.String())
	assert.Equal(t, "2024-04-01", orders[0].IssueDate.Format("2006-01-02"))
	assert.Equal(t, "ARS", orders[0].CurrencyCode)

	var sql strings.Builder
	require.NoError(t, writeOrders(&sql, orders))
	assert.Contains(t, sql.String(), "('4500000001', '10', 'S001', '30700000008', '2024-04-01', 1234.56, 'ARS', 'Tornillos'),")
	assert.Contains(t, sql.String(), "ON CONFLICT (number, position)")
}

func TestParseOrders_Errores(t *testing.T) {
	base := []string{"4500000001", "10", "S001", "30700000008", "01.04.2024", "100,00", "ARS", ""}
	cases := map[string]func(r []string) []string{
		"cuit":     func(r []string) []string { r[3] = "30700000001"; return r },
		"fecha":    func(r []string) []string { r[4] = "2024-04-01"; return r },
		"importe":  func(r []string) []string { r[5] = "cien"; return r },
		"columnas": func(r []string) []string { return r[:4] },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			row := mutate(append([]string(nil), base...))
			_, err := parseOrders([][]string{row})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "fila 2")
		})
	}
}

func TestGenerate_TipoDesconocido(t *testing.T) {
	_, err := generate(&strings.Builder{}, "providers", nil)
	require.Error(t, err)
}
