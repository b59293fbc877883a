package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-ledger/internal/application/auth"
	"github.com/jhoicas/isp-ledger/internal/application/dto"
)

// AuthHandler maneja registro, login y sesión del operador.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Signup godoc
// @Summary      Crear cuenta local
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CredentialsRequest  true  "username, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.CredentialsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.Signup(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CredentialsRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.CredentialsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout cierra la sesión activa.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me devuelve el operador con sesión abierta. RequireSession ya garantiza que coincide con el del token.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.CurrentUser(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "no hay sesión activa"})
	}
	return c.JSON(user)
}
