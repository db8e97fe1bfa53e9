// seed_sap genera scripts SQL para poblar el espejo SAP (cuentas y posiciones de OC)
// a partir de las exportaciones CSV de SAP (separador ';', codificación ISO-8859-1).
//
// Uso: go run ./cmd/seed_sap accounts|orders archivo.csv [salida.sql]
// Sin salida escribe el script a stdout.
//
// Columnas esperadas (la primera fila es encabezado):
//
//	accounts: código;descripción;sociedad;cuit;bloqueada(X|vacío)
//	orders:   número;posición;sociedad;cuit;fecha(dd.mm.aaaa);importe(1.234,56);moneda;descripción
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/cuit"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/textnorm"
)

const sapDateLayout = "02.01.2006"

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed_sap accounts|orders archivo.csv [salida.sql]")
		os.Exit(2)
	}
	kind, csvPath := os.Args[1], os.Args[2]

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	out := io.Writer(os.Stdout)
	if len(os.Args) > 3 {
		file, err := os.Create(os.Args[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}

	rows, err := readRows(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	n, err := generate(out, kind, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: %d filas de %s\n", n, kind)
}

// generate escribe el script del tipo pedido y devuelve la cantidad de filas.
func generate(w io.Writer, kind string, rows [][]string) (int, error) {
	switch kind {
	case "accounts":
		accounts, err := parseAccounts(rows)
		if err != nil {
			return 0, fmt.Errorf("cuentas: %w", err)
		}
		return len(accounts), writeAccounts(w, accounts)
	case "orders":
		orders, err := parseOrders(rows)
		if err != nil {
			return 0, fmt.Errorf("órdenes de compra: %w", err)
		}
		return len(orders), writeOrders(w, orders)
	default:
		return 0, fmt.Errorf("tipo desconocido %q", kind)
	}
}

// readRows decodifica ISO-8859-1 y descarta el encabezado.
func readRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("archivo vacío")
	}
	return rows[1:], nil
}

func parseAccounts(rows [][]string) ([]entity.SapAccount, error) {
	out := make([]entity.SapAccount, 0, len(rows))
	for i, row := range rows {
		if len(row) < 5 {
			return nil, fmt.Errorf("fila %d: se esperaban 5 columnas, hay %d", i+2, len(row))
		}
		taxID := cuit.Normalize(row[3])
		if taxID != "" && !cuit.IsValid(taxID) {
			return nil, fmt.Errorf("fila %d: CUIT inválida %q", i+2, row[3])
		}
		out = append(out, entity.SapAccount{
			Code:        textnorm.Code(row[0]),
			Description: strings.TrimSpace(row[1]),
			SocietyCode: textnorm.Code(row[2]),
			CUIT:        taxID,
			Blocked:     strings.EqualFold(strings.TrimSpace(row[4]), "X"),
		})
	}
	return out, nil
}

func parseOrders(rows [][]string) ([]entity.SapPurchaseOrder, error) {
	out := make([]entity.SapPurchaseOrder, 0, len(rows))
	for i, row := range rows {
		if len(row) < 8 {
			return nil, fmt.Errorf("fila %d: se esperaban 8 columnas, hay %d", i+2, len(row))
		}
		taxID := cuit.Normalize(row[3])
		if !cuit.IsValid(taxID) {
			return nil, fmt.Errorf("fila %d: CUIT inválida %q", i+2, row[3])
		}
		issued, err := time.Parse(sapDateLayout, strings.TrimSpace(row[4]))
		if err != nil {
			return nil, fmt.Errorf("fila %d: fecha %q: %w", i+2, row[4], err)
		}
		amount, err := parseSapAmount(row[5])
		if err != nil {
			return nil, fmt.Errorf("fila %d: importe %q: %w", i+2, row[5], err)
		}
		out = append(out, entity.SapPurchaseOrder{
			Number:       strings.TrimSpace(row[0]),
			Position:     strings.TrimSpace(row[1]),
			SocietyCode:  textnorm.Code(row[2]),
			ProviderCUIT: taxID,
			IssueDate:    issued,
			Amount:       amount,
			CurrencyCode: textnorm.Code(row[6]),
			Description:  strings.TrimSpace(row[7]),
		})
	}
	return out, nil
}

// parseSapAmount interpreta importes con formato local: "1.234,56" o "-10,5".
func parseSapAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}

func writeAccounts(w io.Writer, accounts []entity.SapAccount) error {
	if len(accounts) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("-- Cuentas SAP\n")
	b.WriteString("INSERT INTO sap_accounts (code, description, society_code, cuit, blocked) VALUES\n")
	for i, a := range accounts {
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %t)", escapeSQL(a.Code), escapeSQL(a.Description),
			escapeSQL(a.SocietyCode), a.CUIT, a.Blocked)
		b.WriteString(separator(i, len(accounts)))
	}
	b.WriteString("ON CONFLICT (code) DO UPDATE SET description = EXCLUDED.description, society_code = EXCLUDED.society_code,\n")
	b.WriteString("  cuit = EXCLUDED.cuit, blocked = EXCLUDED.blocked, synced_at = now();\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeOrders(w io.Writer, orders []entity.SapPurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("-- Posiciones de órdenes de compra SAP\n")
	b.WriteString("INSERT INTO sap_purchase_orders (number, position, society_code, provider_cuit, issue_date, amount, currency_code, description) VALUES\n")
	for i, po := range orders {
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s', %s, '%s', '%s')",
			escapeSQL(po.Number), escapeSQL(po.Position), escapeSQL(po.SocietyCode), po.ProviderCUIT,
			po.IssueDate.Format("2006-01-02"), po.Amount.StringFixed(2), escapeSQL(po.CurrencyCode), escapeSQL(po.Description))
		b.WriteString(separator(i, len(orders)))
	}
	b.WriteString("ON CONFLICT (number, position) DO UPDATE SET society_code = EXCLUDED.society_code,\n")
	b.WriteString("  provider_cuit = EXCLUDED.provider_cuit, issue_date = EXCLUDED.issue_date, amount = EXCLUDED.amount,\n")
	b.WriteString("  currency_code = EXCLUDED.currency_code, description = EXCLUDED.description, synced_at = now();\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func separator(i, n int) string {
	if i < n-1 {
		return ",\n"
	}
	return "\n"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
