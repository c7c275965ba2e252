package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"dairypos/engine"
)

// Handler exposes the engine over HTTP. All handlers are thin: parse,
// delegate, map errors to statuses.
type Handler struct {
	Engine *engine.Engine
}

func NewHandler(e *engine.Engine) *Handler {
	return &Handler{Engine: e}
}

type sellRequest struct {
	CustomerName string `json:"customer_name"`
	GSTIN        string `json:"gstin"`
	ProductID    int64  `json:"product_id"`
	Quantity     int    `json:"quantity"`
}

// CreateSale runs the sale transaction and returns the bill summary.
func (h *Handler) CreateSale(c *fiber.Ctx) error {
	var req sellRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	result, err := h.Engine.Sell(c.Context(), req.CustomerName, req.GSTIN, req.ProductID, req.Quantity)
	if err != nil {
		return statusFor(c, err)
	}

	resp := fiber.Map{
		"sale": result.Sale,
		"bill": result.Bill,
	}
	if result.ReceiptErr != nil {
		resp["warning"] = result.ReceiptErr.Error()
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSales lists the full sale history.
func (h *Handler) GetSales(c *fiber.Ctx) error {
	sales, err := h.Engine.ListSales(c.Context())
	if err != nil {
		return statusFor(c, err)
	}
	return c.JSON(fiber.Map{"sales": sales})
}

func statusFor(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidProduct):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
