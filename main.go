package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"dairypos/billing"
	"dairypos/config"
	"dairypos/controllers"
	"dairypos/db"
	"dairypos/engine"
	"dairypos/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Schema creation and the bill_filename migration run here, before any
	// handler can start a transaction.
	store, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	receipts, err := billing.NewPDF(cfg.BillsDir)
	if err != nil {
		log.Fatal(err)
	}

	eng := engine.New(store, receipts, slog.Default())
	h := controllers.NewHandler(eng)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins, // comma separated
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Static("/bills", cfg.BillsDir)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if !db.Reachable(c.Context(), store) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "store unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.RegisterRoutes(app, h)

	log.Fatal(app.Listen(cfg.HTTPAddr))
}
