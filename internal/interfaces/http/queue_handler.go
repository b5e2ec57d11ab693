package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dihegorc/impressao3d-manager/internal/application/dto"
	"github.com/dihegorc/impressao3d-manager/internal/application/queue"
)

// QueueHandler trata a fila de produção e o estoque de acabados.
type QueueHandler struct {
	uc *queue.Queue
}

// NewQueueHandler constrói o handler.
func NewQueueHandler(uc *queue.Queue) *QueueHandler {
	return &QueueHandler{uc: uc}
}

// List devolve os trabalhos ativos por posição.
func (h *QueueHandler) List(c *fiber.Ctx) error {
	jobs, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(jobs), "jobs": jobs})
}

// Enqueue expande o pedido em trabalhos por mesa. O corpo devolve também
// os avisos de falta (não fatais) para o operador decidir.
func (h *QueueHandler) Enqueue(c *fiber.Ctx) error {
	var in dto.EnqueueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	warnings, err := h.uc.PreviewShortfall(in.ProductID, in.Units)
	if err != nil {
		return respondError(c, err)
	}
	jobs, err := h.uc.Enqueue(c.Context(), in.ProductID, in.Units)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"total":     len(jobs),
		"jobs":      jobs,
		"shortfall": warnings,
	})
}

// PreviewShortfall simula a falta de filamento de um pedido sem
// enfileirar nada (?productId=&units=).
func (h *QueueHandler) PreviewShortfall(c *fiber.Ctx) error {
	productID := c.Query("productId")
	units, err := strconv.Atoi(c.Query("units", "1"))
	if err != nil || productID == "" {
		return badBody(c)
	}
	warnings, err := h.uc.PreviewShortfall(productID, units)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"shortfall": warnings})
}

// Reorder move o trabalho uma posição para cima ou para baixo.
func (h *QueueHandler) Reorder(c *fiber.Ctx) error {
	var in dto.ReorderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Reorder(c.Context(), c.Params("id"), in.Direction); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Start inicia a impressão do trabalho.
func (h *QueueHandler) Start(c *fiber.Ctx) error {
	job, err := h.uc.Start(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// StartFinishing move o trabalho para retoques finais.
func (h *QueueHandler) StartFinishing(c *fiber.Ctx) error {
	job, err := h.uc.StartFinishing(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// Finish conclui o trabalho: consome filamento, reindexa a fila e aplica
// o gating de lote.
func (h *QueueHandler) Finish(c *fiber.Ctx) error {
	job, err := h.uc.Finish(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// Cancel remove o trabalho sem consumir nada.
func (h *QueueHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListFinishedGoods devolve o estoque de produto acabado.
func (h *QueueHandler) ListFinishedGoods(c *fiber.Ctx) error {
	goods, err := h.uc.ListFinishedGoods()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(goods), "finishedGoods": goods})
}
