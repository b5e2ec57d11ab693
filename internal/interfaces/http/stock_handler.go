package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dihegorc/impressao3d-manager/internal/application/dto"
	"github.com/dihegorc/impressao3d-manager/internal/application/history"
	"github.com/dihegorc/impressao3d-manager/internal/application/stock"
)

// StockHandler trata estoque de filamento e histórico de consumo.
type StockHandler struct {
	ledger  *stock.Ledger
	history *history.History
}

// NewStockHandler constrói o handler.
func NewStockHandler(ledger *stock.Ledger, hist *history.History) *StockHandler {
	return &StockHandler{ledger: ledger, history: hist}
}

// ListGroups devolve o estoque agregado por grupo material|cor|marca.
func (h *StockHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.ledger.ListGroups()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(groups), "groups": groups})
}

// ListSpools devolve os carretéis individuais, mais antigos primeiro.
func (h *StockHandler) ListSpools(c *fiber.Ctx) error {
	spools, err := h.ledger.ListSpools()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(spools), "spools": spools})
}

// Available devolve os gramas disponíveis do grupo (?groupKey=).
func (h *StockHandler) Available(c *fiber.Ctx) error {
	groupKey := c.Query("groupKey")
	if groupKey == "" {
		return badBody(c)
	}
	available, err := h.ledger.Available(groupKey)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"groupKey": groupKey, "availableG": available})
}

// Restock dá entrada em N carretéis idênticos.
func (h *StockHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	spools, err := h.ledger.Restock(c.Context(), stock.RestockInput{
		Name:       in.Name,
		Material:   in.Material,
		Color:      in.Color,
		Brand:      in.Brand,
		SpoolCount: in.SpoolCount,
		WeightG:    in.WeightG,
		UnitCost:   in.UnitCost,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"total": len(spools), "spools": spools})
}

// Consume aplica uma baixa FIFO manual no grupo.
func (h *StockHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	record, err := h.ledger.Consume(c.Context(), in.GroupKey, in.Grams, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// Adjust corrige o peso de um carretel (não gera histórico).
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	spool, err := h.ledger.Adjust(c.Context(), c.Params("id"), in.DeltaG)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(spool)
}

// ListUsage devolve o histórico de consumo, mais recentes primeiro;
// ?groupKey= filtra por grupo.
func (h *StockHandler) ListUsage(c *fiber.Ctx) error {
	groupKey := c.Query("groupKey")
	var (
		records interface{}
		err     error
	)
	if groupKey != "" {
		records, err = h.history.ListByGroup(groupKey)
	} else {
		records, err = h.history.ListAll()
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"usage": records})
}
