package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/dihegorc/impressao3d-manager/internal/application/costing"
	"github.com/dihegorc/impressao3d-manager/internal/application/dto"
	"github.com/dihegorc/impressao3d-manager/internal/application/product"
	"github.com/dihegorc/impressao3d-manager/internal/application/settings"
	"github.com/dihegorc/impressao3d-manager/internal/application/stock"
	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/domain/repository"
)

// ProductHandler trata o catálogo de receitas e a análise de custo.
type ProductHandler struct {
	products    *product.UseCase
	settings    *settings.UseCase
	ledger      *stock.Ledger
	accessories repository.AccessoryRepository
}

// NewProductHandler constrói o handler.
func NewProductHandler(
	products *product.UseCase,
	settingsUC *settings.UseCase,
	ledger *stock.Ledger,
	accessories repository.AccessoryRepository,
) *ProductHandler {
	return &ProductHandler{products: products, settings: settingsUC, ledger: ledger, accessories: accessories}
}

// List devolve as receitas por nome.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items, err := h.products.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "products": items})
}

// GetByID devolve uma receita.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.products.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// Create grava uma receita nova.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.products.Create(toProductInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// Update substitui a receita.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.products.Update(c.Params("id"), toProductInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// Delete remove a receita.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cost devolve a análise de custo do lote: ?yield= unidades produzidas
// (padrão 1) e ?salesPrice= sobrepõe o preço da receita para simulação.
// Pura: nada é gravado.
func (h *ProductHandler) Cost(c *fiber.Ctx) error {
	p, err := h.products.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	s, err := h.settings.Get()
	if err != nil {
		return respondError(c, err)
	}
	spools, err := h.ledger.ListSpools()
	if err != nil {
		return respondError(c, err)
	}
	catalog, err := h.accessories.List()
	if err != nil {
		return respondError(c, err)
	}

	yield := 1
	if raw := c.Query("yield"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return badBody(c)
		}
		yield = n
	}
	salesPrice := p.PriceBRL
	if raw := c.Query("salesPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return badBody(c)
		}
		salesPrice = d
	}

	analysis := costing.Calculate(costing.Input{
		Product:     p,
		Yield:       yield,
		SalesPrice:  salesPrice,
		Spools:      spools,
		Accessories: catalog,
		Settings:    s,
	})
	return c.JSON(analysis)
}

func toProductInput(in dto.ProductRequest) product.Input {
	plates := make([]product.PlateInput, 0, len(in.Plates))
	for _, p := range in.Plates {
		plates = append(plates, product.PlateInput{
			Name:             p.Name,
			EstimatedMinutes: p.EstimatedMinutes,
			UnitsOnPlate:     p.UnitsOnPlate,
			Filaments:        p.Filaments,
		})
	}
	accessories := make([]entity.AccessoryRequirement, 0, len(in.Accessories))
	accessories = append(accessories, in.Accessories...)
	return product.Input{
		Name:              in.Name,
		Description:       in.Description,
		PriceBRL:          in.PriceBRL,
		Plates:            plates,
		Accessories:       accessories,
		RequiresFinishing: in.RequiresFinishing,
	}
}
