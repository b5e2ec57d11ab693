package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dihegorc/impressao3d-manager/internal/application/auth"
	"github.com/dihegorc/impressao3d-manager/internal/application/dto"
)

// AuthHandler trata o login do operador.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login emite o token de sessão para as credenciais configuradas.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	token, err := h.uc.Login(in.Username, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token})
}
