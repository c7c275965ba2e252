package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type addProductRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// AddProduct creates a catalog entry.
func (h *Handler) AddProduct(c *fiber.Ctx) error {
	var req addProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	product, err := h.Engine.AddProduct(c.Context(), req.Name, req.Quantity, req.Price)
	if err != nil {
		return statusFor(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// DeleteProduct removes a catalog entry; unknown ids succeed quietly.
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product id"})
	}

	if err := h.Engine.DeleteProduct(c.Context(), id); err != nil {
		return statusFor(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// GetProduct returns a single catalog entry.
func (h *Handler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product id"})
	}

	product, err := h.Engine.GetProduct(c.Context(), id)
	if err != nil {
		return statusFor(c, err)
	}
	return c.JSON(product)
}

// GetStock lists the whole catalog.
func (h *Handler) GetStock(c *fiber.Ctx) error {
	products, err := h.Engine.ListProducts(c.Context())
	if err != nil {
		return statusFor(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}
