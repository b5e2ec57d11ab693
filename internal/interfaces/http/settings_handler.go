package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dihegorc/impressao3d-manager/internal/application/settings"
	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
)

// SettingsHandler trata os parâmetros globais de custo.
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler constrói o handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get devolve os parâmetros (padrões quando nada foi salvo).
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.uc.Get()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

// Update valida e grava os parâmetros.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in entity.AppSettings
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.uc.Update(&in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}
