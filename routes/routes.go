package routes

import (
	"github.com/gofiber/fiber/v2"

	"dairypos/controllers"
)

func RegisterRoutes(app *fiber.App, h *controllers.Handler) {

	// pos
	app.Post("/sales", h.CreateSale)
	app.Get("/sales", h.GetSales)

	// stock
	app.Get("/products", h.GetStock)
	app.Get("/products/:id", h.GetProduct)
	app.Post("/products", h.AddProduct)
	app.Delete("/products/:id", h.DeleteProduct)
}
