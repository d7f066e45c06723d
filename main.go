package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/b-himadri/bakery-backend-api/cache"
	"github.com/b-himadri/bakery-backend-api/config"
	"github.com/b-himadri/bakery-backend-api/controller"
	"github.com/b-himadri/bakery-backend-api/kafka"
	"github.com/b-himadri/bakery-backend-api/model"
	"github.com/b-himadri/bakery-backend-api/routes"
	"github.com/b-himadri/bakery-backend-api/search"
	"github.com/b-himadri/bakery-backend-api/service"
	"github.com/b-himadri/bakery-backend-api/store"
)

func initDB(cfg config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.Address{},
		&model.Order{},
	)
	if err != nil {
		log.Fatal("failed to migrate:", err)
	}

	log.Println("Connected to DB:", cfg.DBName)
	return db
}

func main() {
	cfg := config.Load()

	db := initDB(cfg)
	rdb := cache.Connect(cfg.RedisAddr)
	producer := kafka.NewProducer(cfg.KafkaBroker)

	searchClient, err := search.New(cfg.ElasticURL)
	if err != nil {
		log.Printf("Elasticsearch unavailable, product search disabled: %v", err)
		searchClient = nil
	}

	stores := store.New(db)
	carts := service.NewCartService(stores)

	ctrl := routes.Controllers{
		Auth: &controller.AuthController{
			Stores:    stores,
			Carts:     carts,
			JWTSecret: cfg.JWTSecret,
			AdminPin:  cfg.AdminPin,
		},
		Products: &controller.ProductController{
			Products: service.NewProductService(stores),
			Redis:    rdb,
			Search:   searchClient,
		},
		Carts: &controller.CartController{Carts: carts},
		Addresses: &controller.AddressController{
			Addresses: service.NewAddressService(stores),
		},
		Orders: &controller.OrderController{
			Checkout: service.NewCheckoutEngine(stores, producer),
			Orders:   service.NewOrderService(stores, producer, cfg.StrictOrderTransitions),
			Redis:    rdb,
		},
	}

	app := fiber.New()
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "bakery-backend-api running",
			"version": "1.0.0",
		})
	})

	routes.Register(app, ctrl, cfg.JWTSecret)

	log.Println("HTTP server running on", cfg.HTTPAddr)
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
