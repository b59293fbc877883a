package dto

import "github.com/shopspring/decimal"

// PaymentRequest cobro rápido de un mes. Month vacío = mes actual; Amount nulo = saldo pendiente.
// Con method=Free el monto se ignora y el mes queda saldado.
type PaymentRequest struct {
	Month  string           `json:"month" example:"2025-03"`
	Method string           `json:"method" example:"Cash" enums:"Cash,bKash,Free,Other"`
	Amount *decimal.Decimal `json:"amount" swaggertype:"number" example:"300"`
	TrxID  string           `json:"trxId" example:"9AB7XK2"`
}

// RecordEditRequest edición manual de un mes del libro.
type RecordEditRequest struct {
	PaidAmount  *decimal.Decimal `json:"paidAmount" swaggertype:"number" example:"450"`
	PaymentDate *string          `json:"paymentDate" example:"2025-03-05"`
	Remarks     *string          `json:"remarks"`
}

// MonthViewRequest filtros del listado mensual (query string). Year/Month en 0 = mes actual.
type MonthViewRequest struct {
	Year   int    `query:"year" example:"2025"`
	Month  int    `query:"month" example:"3"`
	Query  string `query:"q"`
	Status string `query:"status" enums:"all,paid,partial,due,unpaid"`
}

// BillingRowResponse fila del listado mensual.
type BillingRowResponse struct {
	CustomerID     string                 `json:"customerId"`
	Name           string                 `json:"name"`
	ConnectionName string                 `json:"connectionName"`
	Mobile         string                 `json:"mobile"`
	MonthlyBill    decimal.Decimal        `json:"monthlyBill" swaggertype:"number"`
	Status         string                 `json:"status"`
	Outstanding    decimal.Decimal        `json:"outstanding" swaggertype:"number"`
	Record         *MonthlyRecordResponse `json:"record,omitempty"`
}

// StatsResponse agregados del mes sobre el conjunto filtrado.
type StatsResponse struct {
	TotalCollected decimal.Decimal `json:"totalCollected" swaggertype:"number"`
	TotalDue       decimal.Decimal `json:"totalDue" swaggertype:"number"`
	PaidCount      int             `json:"paidCount"`
	PartialCount   int             `json:"partialCount"`
	DueCount       int             `json:"dueCount"`
	Total          int             `json:"total"`
}

// MonthViewResponse listado mensual + estadísticas.
type MonthViewResponse struct {
	Month string               `json:"month" example:"2025-03"`
	Label string               `json:"label"`
	Rows  []BillingRowResponse `json:"rows"`
	Stats StatsResponse        `json:"stats"`
}
