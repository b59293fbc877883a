package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-ledger/internal/application/backup"
	"github.com/jhoicas/isp-ledger/internal/application/dto"
)

// SyncHandler código de exportación/importación entre instalaciones (protegido).
type SyncHandler struct {
	uc *backup.SyncUseCase
}

// NewSyncHandler construye el handler.
func NewSyncHandler(uc *backup.SyncUseCase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Export godoc
// @Summary      Generar código de sincronización
// @Tags         sync
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SyncCodeResponse
// @Router       /api/sync/export [get]
func (h *SyncHandler) Export(c *fiber.Ctx) error {
	out, err := h.uc.GenerateCode(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Restaurar desde un código de sincronización
// @Tags         sync
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SyncImportRequest  true  "código"
// @Success      200   {object}  dto.SyncImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sync/import [post]
func (h *SyncHandler) Import(c *fiber.Ctx) error {
	var in dto.SyncImportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Restore(c.UserContext(), in.Code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
