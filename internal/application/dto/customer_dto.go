package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/isp-ledger/internal/domain/entity"
)

// CustomerRequest entrada para crear o editar un cliente. Los campos ausentes no se tocan
// (en el alta quedan vacíos, cuota 0 y fecha de conexión = hoy).
type CustomerRequest struct {
	Name           *string          `json:"name" example:"Abdul Karim"`
	ConnectionName *string          `json:"connectionName" example:"karim01"`
	Address        *string          `json:"address" example:"Mirpur 10, Dhaka"`
	Mobile         *string          `json:"mobile" example:"01711-223344"`
	MonthlyBill    *decimal.Decimal `json:"monthlyBill" swaggertype:"number" example:"500"`
	ConnectionDate *string          `json:"connectionDate" example:"2025-03-15"`
}

// ToPatch convierte la entrada en el patch de dominio.
func (r CustomerRequest) ToPatch() entity.CustomerPatch {
	return entity.CustomerPatch{
		Name:           r.Name,
		ConnectionName: r.ConnectionName,
		Address:        r.Address,
		Mobile:         r.Mobile,
		MonthlyBill:    r.MonthlyBill,
		ConnectionDate: r.ConnectionDate,
	}
}

// CustomerResponse salida de un cliente con su libro (registros del más reciente al más antiguo).
type CustomerResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	ConnectionName string                  `json:"connectionName"`
	Address        string                  `json:"address"`
	Mobile         string                  `json:"mobile"`
	MonthlyBill    decimal.Decimal         `json:"monthlyBill" swaggertype:"number"`
	ConnectionDate string                  `json:"connectionDate"`
	CreatedAt      int64                   `json:"createdAt"`
	Records        []MonthlyRecordResponse `json:"records"`
	TotalPaid      decimal.Decimal         `json:"totalPaid" swaggertype:"number"`
	TotalDue       decimal.Decimal         `json:"totalDue" swaggertype:"number"`
}

// MonthlyRecordResponse registro de un mes con su estado derivado.
type MonthlyRecordResponse struct {
	MonthKey      string          `json:"monthKey"`
	ExpectedBill  decimal.Decimal `json:"expectedBill" swaggertype:"number"`
	PaidAmount    decimal.Decimal `json:"paidAmount" swaggertype:"number"`
	Due           decimal.Decimal `json:"due" swaggertype:"number"`
	PaymentDate   string          `json:"paymentDate"`
	Remarks       string          `json:"remarks"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	TrxID         string          `json:"trxId,omitempty"`
	Status        string          `json:"status" example:"partial"`
}
