package entity

import "github.com/shopspring/decimal"

func init() {
	// El documento persistido y el código de exportación guardan montos como números JSON.
	decimal.MarshalJSONWithoutQuotes = true
}

// PaymentMethod medio de pago registrado en un mes.
type PaymentMethod string

// Medios de pago válidos.
const (
	PaymentCash  PaymentMethod = "Cash"
	PaymentBkash PaymentMethod = "bKash"
	PaymentFree  PaymentMethod = "Free"
	PaymentOther PaymentMethod = "Other"
)

// Valid indica si el medio de pago es uno de los conocidos.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentBkash, PaymentFree, PaymentOther:
		return true
	}
	return false
}

// Customer representa un abonado del ISP con su cuenta mensual.
type Customer struct {
	ID             string                    `json:"id"`
	Name           string                    `json:"name"`
	ConnectionName string                    `json:"connectionName"` // etiqueta de la conexión (usuario PPPoE, etc.)
	Address        string                    `json:"address"`
	Mobile         string                    `json:"mobile"`
	MonthlyBill    decimal.Decimal           `json:"monthlyBill"`
	ConnectionDate string                    `json:"connectionDate"` // YYYY-MM-DD, inicio de la facturación
	CreatedAt      int64                     `json:"createdAt"`      // Unix ms, solo para ordenar
	Records        map[string]*MonthlyRecord `json:"records"`        // clave: YYYY-MM
}

// MonthlyRecord es el registro de cobro de un cliente para un mes.
// Se crea al primer pago del mes y solo se elimina junto con su cliente.
type MonthlyRecord struct {
	MonthKey      string          `json:"monthKey"`
	ExpectedBill  decimal.Decimal `json:"expectedBill"` // cuota del mes congelada al crear el registro
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Due           decimal.Decimal `json:"due"`
	PaymentDate   string          `json:"paymentDate"`
	Remarks       string          `json:"remarks"`
	PaymentMethod PaymentMethod   `json:"paymentMethod,omitempty"`
	TrxID         string          `json:"trxId,omitempty"` // solo bKash
}

// CustomerPatch campos opcionales para crear o editar un cliente (nil = no enviado).
type CustomerPatch struct {
	Name           *string          `json:"name"`
	ConnectionName *string          `json:"connectionName"`
	Address        *string          `json:"address"`
	Mobile         *string          `json:"mobile"`
	MonthlyBill    *decimal.Decimal `json:"monthlyBill"`
	ConnectionDate *string          `json:"connectionDate"`
}

// ApplyTo copia sobre c los campos presentes en el patch.
// ID, CreatedAt y Records no son editables por esta vía.
func (p CustomerPatch) ApplyTo(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ConnectionName != nil {
		c.ConnectionName = *p.ConnectionName
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Mobile != nil {
		c.Mobile = *p.Mobile
	}
	if p.MonthlyBill != nil {
		c.MonthlyBill = *p.MonthlyBill
	}
	if p.ConnectionDate != nil {
		c.ConnectionDate = *p.ConnectionDate
	}
}

// RecordPatch campos opcionales de un MonthlyRecord (nil = no enviado).
type RecordPatch struct {
	ExpectedBill  *decimal.Decimal `json:"expectedBill"`
	PaidAmount    *decimal.Decimal `json:"paidAmount"`
	Due           *decimal.Decimal `json:"due"`
	PaymentDate   *string          `json:"paymentDate"`
	Remarks       *string          `json:"remarks"`
	PaymentMethod *PaymentMethod   `json:"paymentMethod"`
	TrxID         *string          `json:"trxId"`
}

// ApplyTo copia sobre r los campos presentes en el patch. MonthKey no cambia.
func (p RecordPatch) ApplyTo(r *MonthlyRecord) {
	if p.ExpectedBill != nil {
		r.ExpectedBill = *p.ExpectedBill
	}
	if p.PaidAmount != nil {
		r.PaidAmount = *p.PaidAmount
	}
	if p.Due != nil {
		r.Due = *p.Due
	}
	if p.PaymentDate != nil {
		r.PaymentDate = *p.PaymentDate
	}
	if p.Remarks != nil {
		r.Remarks = *p.Remarks
	}
	if p.PaymentMethod != nil {
		r.PaymentMethod = *p.PaymentMethod
	}
	if p.TrxID != nil {
		r.TrxID = *p.TrxID
	}
}

// DefaultRecord es el registro que se sintetiza la primera vez que se toca un mes:
// cuota = monthlyBill actual del cliente, nada pagado, todo adeudado.
func DefaultRecord(c *Customer, monthKey string) MonthlyRecord {
	return MonthlyRecord{
		MonthKey:     monthKey,
		ExpectedBill: c.MonthlyBill,
		PaidAmount:   decimal.Zero,
		Due:          c.MonthlyBill,
	}
}

// Record devuelve el registro del mes o nil si aún no existe.
func (c *Customer) Record(monthKey string) *MonthlyRecord {
	if c.Records == nil {
		return nil
	}
	return c.Records[monthKey]
}

// Clone devuelve una copia profunda (los registros no se comparten).
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	out := *c
	out.Records = make(map[string]*MonthlyRecord, len(c.Records))
	for k, r := range c.Records {
		if r == nil {
			continue
		}
		rc := *r
		out.Records[k] = &rc
	}
	return &out
}
