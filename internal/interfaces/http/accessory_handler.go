package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dihegorc/impressao3d-manager/internal/application/accessory"
	"github.com/dihegorc/impressao3d-manager/internal/application/dto"
)

// AccessoryHandler trata o catálogo de acessórios.
type AccessoryHandler struct {
	uc *accessory.UseCase
}

// NewAccessoryHandler constrói o handler.
func NewAccessoryHandler(uc *accessory.UseCase) *AccessoryHandler {
	return &AccessoryHandler{uc: uc}
}

// List devolve o catálogo por nome.
func (h *AccessoryHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "accessories": items})
}

// Create grava um acessório novo.
func (h *AccessoryHandler) Create(c *fiber.Ctx) error {
	var in dto.AccessoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	a, err := h.uc.Create(in.Name, in.UnitCost)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// Update altera nome e custo.
func (h *AccessoryHandler) Update(c *fiber.Ctx) error {
	var in dto.AccessoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	a, err := h.uc.Update(c.Params("id"), in.Name, in.UnitCost)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(a)
}

// Delete remove o acessório.
func (h *AccessoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
