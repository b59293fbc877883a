package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-ledger/internal/application/billing"
	"github.com/jhoicas/isp-ledger/internal/application/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BillingHandler listado mensual de facturación (protegido).
type BillingHandler struct {
	reports    *billing.ReportUseCase
	statements *billing.StatementUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(reports *billing.ReportUseCase, statements *billing.StatementUseCase) *BillingHandler {
	return &BillingHandler{reports: reports, statements: statements}
}

// MonthView godoc
// @Summary      Listado mensual con estado y totales
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Param        year    query  int     false  "año (por defecto el actual)"
// @Param        month   query  int     false  "mes 1-12 (por defecto el actual)"
// @Param        q       query  string  false  "búsqueda por nombre, conexión o móvil"
// @Param        status  query  string  false  "all, paid, partial, due, unpaid"
// @Success      200     {object}  dto.MonthViewResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/billing [get]
func (h *BillingHandler) MonthView(c *fiber.Ctx) error {
	var in dto.MonthViewRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.reports.MonthView(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar el listado mensual a Excel
// @Tags         billing
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        year    query  int     false  "año"
// @Param        month   query  int     false  "mes 1-12"
// @Param        q       query  string  false  "búsqueda"
// @Param        status  query  string  false  "filtro de estado"
// @Success      200     {file}  binary
// @Router       /api/billing/export [get]
func (h *BillingHandler) Export(c *fiber.Ctx) error {
	var in dto.MonthViewRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	data, filename, err := h.statements.MonthListXLSX(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
