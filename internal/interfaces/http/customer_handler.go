package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-ledger/internal/application/billing"
	"github.com/jhoicas/isp-ledger/internal/application/dto"
)

// CustomerHandler maneja clientes y su libro mensual (protegido).
type CustomerHandler struct {
	customers  *billing.CustomerUseCase
	payments   *billing.PaymentUseCase
	statements *billing.StatementUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(customers *billing.CustomerUseCase, payments *billing.PaymentUseCase, statements *billing.StatementUseCase) *CustomerHandler {
	return &CustomerHandler{customers: customers, payments: payments, statements: statements}
}

// Create godoc
// @Summary      Alta de cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CustomerRequest  true  "datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.customers.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clientes (más recientes primero)
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.customers.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.customers.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "cliente no encontrado")
	}
	return c.JSON(out)
}

// Update PUT /api/customers/:id (solo los campos presentes).
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.customers.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "cliente no encontrado")
	}
	return c.JSON(out)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.customers.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordPayment godoc
// @Summary      Cobro rápido de un mes (Cash, bKash, Free)
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID del cliente"
// @Param        body  body  dto.PaymentRequest  true  "mes, medio, monto, trxId"
// @Success      200   {object}  dto.MonthlyRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/payments [post]
func (h *CustomerHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payments.RecordPayment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "cliente no encontrado")
	}
	return c.JSON(out)
}

// EditRecord godoc
// @Summary      Edición manual de un mes del libro
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  string                 true  "ID del cliente"
// @Param        month  path  string                 true  "YYYY-MM"
// @Param        body   body  dto.RecordEditRequest  true  "paidAmount, paymentDate, remarks"
// @Success      200    {object}  dto.MonthlyRecordResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/records/{month} [put]
func (h *CustomerHandler) EditRecord(c *fiber.Ctx) error {
	var in dto.RecordEditRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payments.EditRecord(c.UserContext(), c.Params("id"), c.Params("month"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "cliente no encontrado")
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Estado de cuenta del cliente en PDF
// @Tags         customers
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/statement [get]
func (h *CustomerHandler) Statement(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.statements.CustomerStatementPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(pdfBytes)
}
