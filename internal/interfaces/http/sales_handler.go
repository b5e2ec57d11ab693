package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dihegorc/impressao3d-manager/internal/application/dto"
	"github.com/dihegorc/impressao3d-manager/internal/application/sales"
)

// SalesHandler trata vendas de produto acabado.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler constrói o handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Create registra uma venda e dá baixa no estoque de acabados.
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	items := make([]sales.ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.ItemInput{ProductID: it.ProductID, Qty: it.Qty})
	}
	sale, err := h.uc.Create(c.Context(), items, in.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List devolve as vendas, mais recentes primeiro.
func (h *SalesHandler) List(c *fiber.Ctx) error {
	all, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(all), "sales": all})
}
