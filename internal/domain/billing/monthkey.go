// Package billing contiene las reglas puras de conciliación mensual: clave de mes,
// políticas de pago, clasificación de estado, elegibilidad y agregados.
// No depende de almacenamiento ni de transporte.
package billing

import (
	"fmt"
	"strconv"
	"time"
)

// MonthKey identifica un período de facturación (formato YYYY-MM).
type MonthKey struct {
	Year  int
	Month time.Month
}

// NewMonthKey construye la clave validando el mes.
func NewMonthKey(year int, month time.Month) (MonthKey, error) {
	if month < time.January || month > time.December || year < 1 || year > 9999 {
		return MonthKey{}, fmt.Errorf("mes inválido: %d-%d", year, month)
	}
	return MonthKey{Year: year, Month: month}, nil
}

// MonthKeyOf devuelve la clave del mes de t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// ParseMonthKey interpreta "YYYY-MM".
func ParseMonthKey(s string) (MonthKey, error) {
	if len(s) != 7 || s[4] != '-' {
		return MonthKey{}, fmt.Errorf("clave de mes inválida %q (se espera YYYY-MM)", s)
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil {
		return MonthKey{}, fmt.Errorf("año inválido en %q", s)
	}
	m, err := strconv.Atoi(s[5:])
	if err != nil {
		return MonthKey{}, fmt.Errorf("mes inválido en %q", s)
	}
	return NewMonthKey(y, time.Month(m))
}

// String devuelve "YYYY-MM"; es la clave del mapa de registros del cliente.
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Before indica si k es anterior a other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// LastDay último día del mes (fin de la ventana de elegibilidad).
func (k MonthKey) LastDay() time.Time {
	return time.Date(k.Year, k.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// Label etiqueta legible en bengalí, ej: "মার্চ 2025" (la usa el listado mensual).
func (k MonthKey) Label() string {
	return fmt.Sprintf("%s %d", monthsBN[k.Month-1], k.Year)
}

// LabelEN etiqueta en inglés, ej: "March 2025" (PDF con fuentes core).
func (k MonthKey) LabelEN() string {
	return fmt.Sprintf("%s %d", k.Month.String(), k.Year)
}

var monthsBN = [...]string{
	"জানুয়ারি", "ফেব্রুয়ারি", "মার্চ", "এপ্রিল", "মে", "জুন",
	"জুলাই", "আগস্ট", "সেপ্টেম্বর", "অক্টোবর", "নভেম্বর", "ডিসেম্বর",
}

// ParseDate interpreta la fecha de conexión y devuelve su mes. Acepta "YYYY-MM-DD"
// y también marcas ISO completas; solo importan año y mes.
func ParseDate(s string) (MonthKey, error) {
	if len(s) < 7 {
		return MonthKey{}, fmt.Errorf("fecha inválida %q", s)
	}
	if len(s) >= 10 {
		if _, err := time.Parse("2006-01-02", s[:10]); err != nil {
			return MonthKey{}, fmt.Errorf("fecha inválida %q: %w", s, err)
		}
	}
	return ParseMonthKey(s[:7])
}
