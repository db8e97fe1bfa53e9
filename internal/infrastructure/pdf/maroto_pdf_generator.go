// Package pdf genera la constancia de precarga de un documento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sociedad + CUIT      │  Tipo P.V.-Número + Estado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Razón social + CUIT                              │
//	│  DATOS: Emisión / Vencimiento / Importe                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: OC | Posición | Importe                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS                                                       │
//	│  FOOTER: QR + precargado por / fecha                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/cuit"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.VoucherGenerator = (*MarotoVoucherGenerator)(nil)

// MarotoVoucherGenerator implementa usecase.VoucherGenerator usando Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator construye el generador.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

// GenerateVoucher genera el PDF y devuelve sus bytes.
func (g *MarotoVoucherGenerator) GenerateVoucher(_ context.Context, v *usecase.Voucher) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Constancia de precarga "+voucherNumber(v), true).
		WithAuthor(v.SocietyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(providerRow(v))
	m.AddRows(dataRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(v.PurchaseOrders) > 0 {
		m.AddRows(tableHeaderRow())
		m.AddRows(purchaseOrderRows(v)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}
	if len(v.Notes) > 0 {
		m.AddRows(noteRows(v.Notes)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(v))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar constancia: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: sociedad receptora (izq) y comprobante + estado (der).
func headerRow(v *usecase.Voucher) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(v.SocietyName, v.SocietyCode), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sociedad "+v.SocietyCode, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CONSTANCIA DE PRECARGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(voucherNumber(v), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+v.StateCode, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func providerRow(v *usecase.Voucher) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(v.ProviderName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("CUIT: "+cuit.Format(v.ProviderCUIT), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// dataRow: fechas, importe y descripción.
func dataRow(v *usecase.Voucher) core.Row {
	due := "—"
	if v.DueDate != nil {
		due = v.DueDate.Format(dateLayout)
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(fmt.Sprintf("Emisión: %s   |   Vencimiento: %s", v.IssueDate.Format(dateLayout), due),
				props.Text{Size: 9, Top: 2}),
			text.New(nonEmpty(v.Description, "Sin descripción"), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("IMPORTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(v.CurrencyCode+" "+formatMoney(v.Amount), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Orden de compra", 5, align.Left),
		h("Posición", 3, align.Center),
		h("Importe", 4, align.Right),
	)
}

// purchaseOrderRows: una fila por posición de OC asociada.
func purchaseOrderRows(v *usecase.Voucher) []core.Row {
	result := make([]core.Row, 0, len(v.PurchaseOrders))
	for _, po := range v.PurchaseOrders {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(po.Number, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(po.Position, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(formatMoney(po.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// noteRows: notas de la más reciente a la más antigua, partidas en líneas de 110 caracteres.
func noteRows(notes []string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("NOTAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, n := range notes {
		for _, chunk := range splitEvery(strings.ReplaceAll(n, "\n", " "), 110) {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 7, Color: colorGray, Top: 0.5, Left: 2}),
			)))
		}
		rows = append(rows, row.New(2))
	}
	return rows
}

// footerRow: QR con la referencia interna del documento y datos de la precarga.
func footerRow(v *usecase.Voucher) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(fmt.Sprintf("gecom:document:%d", v.DocumentID), props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New(fmt.Sprintf("Documento interno N° %d", v.DocumentID), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3, Color: colorPrimary,
			}),
			text.New(fmt.Sprintf("Precargado por %s el %s", nonEmpty(v.CreatedBy, "—"), v.CreatedAt.Format(dateLayout+" 15:04")), props.Text{
				Size: 8, Top: 11, Left: 3, Color: colorGray,
			}),
			text.New("Esta constancia no implica la aprobación del comprobante.", props.Text{
				Size: 6.5, Top: 18, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func voucherNumber(v *usecase.Voucher) string {
	return fmt.Sprintf("%s %s-%s", v.DocumentType, v.PointOfSale, v.Number)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 1250.5 → "1.250,50", 1000000 → "1.000.000,00"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf) + "," + frac
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	var parts []string
	r := []rune(s)
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
