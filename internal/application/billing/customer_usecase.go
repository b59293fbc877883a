package billing

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/isp-ledger/internal/application/dto"
	"github.com/jhoicas/isp-ledger/internal/domain"
	domainbilling "github.com/jhoicas/isp-ledger/internal/domain/billing"
	"github.com/jhoicas/isp-ledger/internal/domain/repository"
)

// CustomerUseCase casos de uso de la cartera de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// validate rechaza cuotas negativas y fechas de conexión ilegibles. El resto se acepta tal cual.
func validate(in dto.CustomerRequest) error {
	if in.MonthlyBill != nil && in.MonthlyBill.IsNegative() {
		return fmt.Errorf("%w: monthlyBill no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.ConnectionDate != nil && strings.TrimSpace(*in.ConnectionDate) != "" {
		if _, err := domainbilling.ParseDate(*in.ConnectionDate); err != nil {
			return fmt.Errorf("%w: connectionDate debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	return nil
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.Create(ctx, in.ToPatch())
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// List lista todos los clientes, más recientes primero.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt > list[j].CreatedAt })
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// GetByID obtiene el cliente con su libro. nil, nil si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Update edita los datos del cliente. nil, nil si no existe.
// Cambiar monthlyBill no altera el expectedBill de los meses ya registrados.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, id, in.ToPatch()); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina el cliente y su historial. ErrNotFound si no existe.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}
