package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/isp-ledger/internal/application/dto"
	domainbilling "github.com/jhoicas/isp-ledger/internal/domain/billing"
	"github.com/jhoicas/isp-ledger/internal/domain/entity"
)

func toRecordResponse(r *entity.MonthlyRecord) *dto.MonthlyRecordResponse {
	if r == nil {
		return nil
	}
	return &dto.MonthlyRecordResponse{
		MonthKey:      r.MonthKey,
		ExpectedBill:  r.ExpectedBill,
		PaidAmount:    r.PaidAmount,
		Due:           r.Due,
		PaymentDate:   r.PaymentDate,
		Remarks:       r.Remarks,
		PaymentMethod: string(r.PaymentMethod),
		TrxID:         r.TrxID,
		Status:        string(domainbilling.Classify(r)),
	}
}

// toCustomerResponse incluye el libro ordenado (más reciente primero) y sus totales.
func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	out := &dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		ConnectionName: c.ConnectionName,
		Address:        c.Address,
		Mobile:         c.Mobile,
		MonthlyBill:    c.MonthlyBill,
		ConnectionDate: c.ConnectionDate,
		CreatedAt:      c.CreatedAt,
		Records:        []dto.MonthlyRecordResponse{},
		TotalPaid:      decimal.Zero,
		TotalDue:       decimal.Zero,
	}
	for _, key := range domainbilling.SortedRecordKeys(c) {
		r := c.Records[key]
		if r == nil {
			continue
		}
		out.Records = append(out.Records, *toRecordResponse(r))
		out.TotalPaid = out.TotalPaid.Add(r.PaidAmount)
		out.TotalDue = out.TotalDue.Add(r.Due)
	}
	return out
}

func toRowResponse(r domainbilling.Row) dto.BillingRowResponse {
	outstanding := r.Customer.MonthlyBill
	if r.Record != nil {
		outstanding = r.Record.Due
	}
	return dto.BillingRowResponse{
		CustomerID:     r.Customer.ID,
		Name:           r.Customer.Name,
		ConnectionName: r.Customer.ConnectionName,
		Mobile:         r.Customer.Mobile,
		MonthlyBill:    r.Customer.MonthlyBill,
		Status:         string(r.Status),
		Outstanding:    outstanding,
		Record:         toRecordResponse(r.Record),
	}
}

func toStatsResponse(s domainbilling.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalCollected: s.TotalCollected,
		TotalDue:       s.TotalDue,
		PaidCount:      s.PaidCount,
		PartialCount:   s.PartialCount,
		DueCount:       s.DueCount,
		Total:          s.PaidCount + s.PartialCount + s.DueCount,
	}
}
