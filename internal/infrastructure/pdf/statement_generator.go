// Package pdf genera el estado de cuenta imprimible de un cliente con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del ISP         │  STATEMENT + fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre, conexión, móvil, dirección, cuota          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Mes | Cuota | Pagado | Saldo | Método | Observación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Pagado / Saldo pendiente                           │
//	│  FOOTER: QR con el ID del cliente                            │
//	└─────────────────────────────────────────────────────────────┘
//
// Las fuentes core de PDF no cubren el bengalí ni el signo ৳: los montos se
// imprimen con el código BDT y las observaciones automáticas se traducen.
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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

	appbilling "github.com/jhoicas/isp-ledger/internal/application/billing"
	domainbilling "github.com/jhoicas/isp-ledger/internal/domain/billing"
	"github.com/jhoicas/isp-ledger/internal/domain/entity"
	"github.com/jhoicas/isp-ledger/pkg/money"
)

var _ appbilling.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorPaid    = &props.Color{Red: 16, Green: 124, Blue: 65}
	colorDue     = &props.Color{Red: 190, Green: 30, Blue: 45}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa billing.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct {
	businessName string
}

// NewMarotoStatementGenerator construye el generador; businessName va en la cabecera.
func NewMarotoStatementGenerator(businessName string) *MarotoStatementGenerator {
	return &MarotoStatementGenerator{businessName: businessName}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes. records ya viene ordenado.
func (g *MarotoStatementGenerator) GenerateStatementPDF(
	_ context.Context,
	customer *entity.Customer,
	records []*entity.MonthlyRecord,
	issuedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Customer statement", true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.businessName, issuedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRecordRows(records)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(records))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(customer))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(businessName string, issuedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(latin(nonEmpty(businessName, "ISP Billing")), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("CUSTOMER STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Issued: "+issuedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func customerRow(c *entity.Customer) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("CUSTOMER", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(latin(nonEmpty(c.Name, "-")), props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
			text.New(fmt.Sprintf("Connection: %s   |   Mobile: %s   |   Since: %s",
				latin(nonEmpty(c.ConnectionName, "-")),
				nonEmpty(c.Mobile, "-"),
				nonEmpty(c.ConnectionDate, "-"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New(fmt.Sprintf("Address: %s   |   Monthly bill: %s",
				latin(nonEmpty(c.Address, "-")),
				money.FormatCode(c.MonthlyBill),
			), props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Month", 2, align.Left),
		h("Bill", 2, align.Right),
		h("Paid", 2, align.Right),
		h("Due", 2, align.Right),
		h("Method", 1, align.Center),
		h("Remarks", 3, align.Left),
	)
}

func tableRecordRows(records []*entity.MonthlyRecord) []core.Row {
	if len(records) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("No payments recorded yet.", props.Text{Size: 8, Color: colorGray, Top: 2, Align: align.Center}),
		))}
	}
	result := make([]core.Row, 0, len(records))
	for _, r := range records {
		dueColor := colorPaid
		if domainbilling.Classify(r) != domainbilling.StatusPaid {
			dueColor = colorDue
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(monthLabel(r.MonthKey), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.FormatCode(r.ExpectedBill), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.FormatCode(r.PaidAmount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.FormatCode(r.Due), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: dueColor})),
			col.New(1).Add(text.New(nonEmpty(string(r.PaymentMethod), "-"), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(remarksEN(r), props.Text{Size: 7, Top: 1, Left: 1})),
		))
	}
	return result
}

func totalsRow(records []*entity.MonthlyRecord) core.Row {
	paid, due := decimal.Zero, decimal.Zero
	for _, r := range records {
		paid = paid.Add(r.PaidAmount)
		due = due.Add(r.Due)
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Color: c})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Total paid:"), label("Outstanding:")),
		col.New(3).Add(value(money.FormatCode(paid), colorPaid), value(money.FormatCode(due), colorDue)),
	)
}

func footerRow(c *entity.Customer) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr("customer:"+c.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Customer ID: "+c.ID, props.Text{Size: 7, Top: 6, Left: 3, Color: colorGray}),
			text.New("Please keep this statement for your records.", props.Text{Size: 7, Top: 12, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func monthLabel(key string) string {
	k, err := domainbilling.ParseMonthKey(key)
	if err != nil {
		return key
	}
	return k.LabelEN()
}

// remarksEN traduce las observaciones automáticas; el texto libre se imprime filtrado.
func remarksEN(r *entity.MonthlyRecord) string {
	switch {
	case r.Remarks == "":
		return ""
	case r.Remarks == domainbilling.RemarksCash:
		return "Cash payment"
	case strings.HasPrefix(r.Remarks, domainbilling.RemarksCashPartial):
		return "Cash partial payment"
	case r.Remarks == domainbilling.RemarksFree:
		return "Free connection (bill waived)"
	case r.Remarks == domainbilling.RemarksOther:
		return "Bill paid"
	case r.PaymentMethod == entity.PaymentBkash && r.TrxID != "" && r.Remarks == fmt.Sprintf(domainbilling.RemarksBkash, r.TrxID):
		return "bKash payment (TrxID: " + r.TrxID + ")"
	}
	return latin(r.Remarks)
}

// latin descarta los caracteres fuera de Latin-1 (no representables en las fuentes core).
func latin(s string) string {
	out := strings.Map(func(r rune) rune {
		if r > 0xFF {
			return -1
		}
		return r
	}, s)
	out = strings.Join(strings.Fields(out), " ")
	if out == "" && s != "" {
		return "?"
	}
	return out
}
