package billing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/isp-ledger/internal/domain/entity"
)

// StatusFilter filtro de estado del listado mensual.
type StatusFilter string

const (
	FilterAll     StatusFilter = "all"
	FilterPaid    StatusFilter = "paid"
	FilterPartial StatusFilter = "partial"
	FilterDue     StatusFilter = "due"
	FilterUnpaid  StatusFilter = "unpaid" // todo lo que no está Paid (due + partial)
)

// ParseStatusFilter interpreta el filtro; vacío equivale a "all".
func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, true
	case FilterPaid, FilterPartial, FilterDue, FilterUnpaid:
		return f, true
	}
	return "", false
}

// Accepts indica si un estado pasa el filtro.
func (f StatusFilter) Accepts(s Status) bool {
	switch f {
	case FilterPaid:
		return s == StatusPaid
	case FilterPartial:
		return s == StatusPartial
	case FilterDue:
		return s == StatusDue
	case FilterUnpaid:
		return s != StatusPaid
	default:
		return true
	}
}

// Eligible indica si un cliente con esa fecha de conexión entra en la facturación del mes:
// conexión en o antes del último día del mes. Fechas ilegibles no son elegibles.
func Eligible(connectionDate string, month MonthKey) bool {
	conn, err := ParseDate(connectionDate)
	if err != nil {
		return false
	}
	return !month.Before(conn)
}

// MatchesQuery búsqueda sin distinción de mayúsculas en nombre y etiqueta de conexión;
// en el móvil es una subcadena literal (sin normalizar separadores).
func MatchesQuery(c *entity.Customer, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	fold := cases.Fold()
	q := fold.String(query)
	return strings.Contains(fold.String(c.Name), q) ||
		strings.Contains(fold.String(c.ConnectionName), q) ||
		strings.Contains(c.Mobile, query)
}

// MonthFilter criterios del listado mensual.
type MonthFilter struct {
	Month  MonthKey
	Query  string
	Status StatusFilter
}

// Row fila del listado mensual: cliente, su registro del mes (puede ser nil) y el estado derivado.
type Row struct {
	Customer *entity.Customer
	Record   *entity.MonthlyRecord
	Status   Status
}

// Stats agregados del conjunto filtrado para el mes.
type Stats struct {
	TotalCollected decimal.Decimal
	TotalDue       decimal.Decimal
	PaidCount      int
	PartialCount   int
	DueCount       int
}

// FilterMonth aplica elegibilidad, búsqueda y filtro de estado. El resultado queda
// ordenado por CreatedAt descendente (más recientes primero).
func FilterMonth(customers []*entity.Customer, f MonthFilter) []Row {
	key := f.Month.String()
	rows := make([]Row, 0, len(customers))
	for _, c := range customers {
		if c == nil || !Eligible(c.ConnectionDate, f.Month) || !MatchesQuery(c, f.Query) {
			continue
		}
		rec := c.Record(key)
		st := Classify(rec)
		if !f.Status.Accepts(st) {
			continue
		}
		rows = append(rows, Row{Customer: c, Record: rec, Status: st})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Customer.CreatedAt > rows[j].Customer.CreatedAt
	})
	return rows
}

// Summarize calcula los totales del mes. Un cliente sin registro aporta su cuota completa como adeudado.
func Summarize(rows []Row) Stats {
	st := Stats{TotalCollected: decimal.Zero, TotalDue: decimal.Zero}
	for _, r := range rows {
		if r.Record != nil {
			st.TotalCollected = st.TotalCollected.Add(r.Record.PaidAmount)
			st.TotalDue = st.TotalDue.Add(r.Record.Due)
		} else {
			st.TotalDue = st.TotalDue.Add(r.Customer.MonthlyBill)
		}
		switch r.Status {
		case StatusPaid:
			st.PaidCount++
		case StatusPartial:
			st.PartialCount++
		default:
			st.DueCount++
		}
	}
	return st
}

// SortedRecordKeys claves de los registros del cliente, más recientes primero.
func SortedRecordKeys(c *entity.Customer) []string {
	keys := make([]string, 0, len(c.Records))
	for k := range c.Records {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}
