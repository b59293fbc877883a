package billing

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/isp-ledger/internal/domain"
	"github.com/jhoicas/isp-ledger/internal/domain/entity"
	"github.com/jhoicas/isp-ledger/pkg/money"
)

// Status estado de cobro de un cliente en un mes. Se deriva, nunca se persiste.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPartial Status = "partial"
	StatusDue     Status = "due"
)

// Remarks automáticos del cobro rápido (se muestran tal cual en el libro del cliente).
const (
	RemarksCash        = "নগদ (Cash) পেমেন্ট"
	RemarksCashPartial = "নগদ (Cash) আংশিক পেমেন্ট"
	RemarksBkash       = "বিকাশ পেমেন্ট (TrxID: %s)"
	RemarksFree        = "ফ্রি সংযোগ (বিল মওকুফ)"
	RemarksOther       = "বিল পরিশোধ করা হয়েছে"
)

const (
	trxPrefix   = "BK"
	trxLength   = 8
	trxAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Classify deriva el estado a partir del registro del mes (nil = sin registro).
//   - Paid:    paid > 0 y due <= 0
//   - Partial: paid > 0 y due > 0
//   - Due:     sin registro o paid == 0
func Classify(rec *entity.MonthlyRecord) Status {
	if rec == nil || !rec.PaidAmount.IsPositive() {
		return StatusDue
	}
	if rec.Due.IsPositive() {
		return StatusPartial
	}
	return StatusPaid
}

// DueFor devuelve max(0, expected - paid).
func DueFor(expected, paid decimal.Decimal) decimal.Decimal {
	d := expected.Sub(paid)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Payment datos de una acción de cobro rápido.
type Payment struct {
	Method entity.PaymentMethod
	Amount *decimal.Decimal // nil = saldo pendiente del mes
	TrxID  string           // solo bKash; vacío = se genera
	Date   string           // YYYY-MM-DD de la acción
}

// ApplyPayment calcula el patch que registra un pago sobre el registro actual del mes
// (o el registro por defecto si aún no existe). Los pagos se acumulan en PaidAmount
// y Due siempre queda en max(0, ExpectedBill - PaidAmount).
func ApplyPayment(current entity.MonthlyRecord, p Payment) (entity.RecordPatch, error) {
	method := p.Method
	if method == "" {
		method = entity.PaymentOther
	}
	if !method.Valid() {
		return entity.RecordPatch{}, fmt.Errorf("%w: medio de pago %q", domain.ErrInvalidInput, p.Method)
	}

	expected := current.ExpectedBill
	if method == entity.PaymentFree {
		return freeWaiver(expected, p.Date), nil
	}

	amount := current.Due
	if p.Amount != nil {
		amount = *p.Amount
	}
	if amount.IsNegative() {
		return entity.RecordPatch{}, fmt.Errorf("%w: monto negativo", domain.ErrInvalidInput)
	}

	paid := current.PaidAmount.Add(amount)
	due := DueFor(expected, paid)
	date := p.Date

	patch := entity.RecordPatch{
		ExpectedBill:  &expected,
		PaidAmount:    &paid,
		Due:           &due,
		PaymentDate:   &date,
		PaymentMethod: &method,
	}

	var remarks string
	switch method {
	case entity.PaymentCash:
		remarks = RemarksCash
		if due.IsPositive() {
			remarks = RemarksCashPartial + " " + money.Format(amount)
		}
	case entity.PaymentBkash:
		trx := p.TrxID
		if trx == "" {
			var err error
			if trx, err = GenerateTrxID(); err != nil {
				return entity.RecordPatch{}, err
			}
		}
		patch.TrxID = &trx
		remarks = fmt.Sprintf(RemarksBkash, trx)
	default:
		remarks = RemarksOther
	}
	patch.Remarks = &remarks
	return patch, nil
}

// freeWaiver marca el mes como saldado sin cobro: paid = expected, due = 0,
// ignorando el monto que haya ingresado el operador.
func freeWaiver(expected decimal.Decimal, date string) entity.RecordPatch {
	paid := expected
	due := decimal.Zero
	method := entity.PaymentFree
	remarks := RemarksFree
	return entity.RecordPatch{
		ExpectedBill:  &expected,
		PaidAmount:    &paid,
		Due:           &due,
		PaymentDate:   &date,
		Remarks:       &remarks,
		PaymentMethod: &method,
	}
}

// ManualEdit edición directa de una celda del libro. Si se envía PaidAmount,
// Due se recalcula con tope en cero (un sobrepago no deja saldo negativo).
type ManualEdit struct {
	PaidAmount  *decimal.Decimal
	PaymentDate *string
	Remarks     *string
}

// ApplyManualEdit calcula el patch de una edición manual sobre el registro actual.
func ApplyManualEdit(current entity.MonthlyRecord, e ManualEdit) (entity.RecordPatch, error) {
	patch := entity.RecordPatch{
		PaymentDate: e.PaymentDate,
		Remarks:     e.Remarks,
	}
	if e.PaidAmount != nil {
		if e.PaidAmount.IsNegative() {
			return entity.RecordPatch{}, fmt.Errorf("%w: monto negativo", domain.ErrInvalidInput)
		}
		paid := *e.PaidAmount
		due := DueFor(current.ExpectedBill, paid)
		patch.PaidAmount = &paid
		patch.Due = &due
	}
	return patch, nil
}

// GenerateTrxID genera un ID de transacción bKash sintético: "BK" + 8 caracteres [A-Z0-9].
func GenerateTrxID() (string, error) {
	buf := make([]byte, trxLength)
	limit := big.NewInt(int64(len(trxAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generar trxId: %w", err)
		}
		buf[i] = trxAlphabet[n.Int64()]
	}
	return trxPrefix + string(buf), nil
}
