package controller

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/b-himadri/bakery-backend-api/model"
	"github.com/b-himadri/bakery-backend-api/search"
	"github.com/b-himadri/bakery-backend-api/service"
)

const productsCacheKey = "products:in_stock"

type ProductController struct {
	Products *service.ProductService
	Redis    *redis.Client
	Search   *search.Client
}

// List is the public catalog: in-stock products only, cached in Redis.
func (pc *ProductController) List(c *fiber.Ctx) error {
	ctx := c.Context()

	if cached, err := pc.Redis.Get(ctx, productsCacheKey).Result(); err == nil {
		c.Set("Content-Type", "application/json")
		return c.SendString(cached)
	}

	products, err := pc.Products.List(ctx, true)
	if err != nil {
		return respondErr(c, err)
	}

	if data, err := json.Marshal(products); err == nil {
		pc.Redis.Set(ctx, productsCacheKey, data, 5*time.Minute)
	}
	return c.JSON(products)
}

// ListAdmin returns every product, out-of-stock included.
func (pc *ProductController) ListAdmin(c *fiber.Ctx) error {
	products, err := pc.Products.List(c.Context(), false)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func (pc *ProductController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	product, err := pc.Products.Get(c.Context(), uint(id))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(product)
}

func (pc *ProductController) Create(c *fiber.Ctx) error {
	var body model.Product
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	product, err := pc.Products.Create(c.Context(), &body)
	if err != nil {
		return respondErr(c, err)
	}

	pc.invalidate(c.Context())
	pc.index(product)
	return c.Status(201).JSON(fiber.Map{"message": "product added successfully", "product": product})
}

func (pc *ProductController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var body struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		ImageURL    *string  `json:"image_url"`
		Category    *string  `json:"category"`
		Stock       *int     `json:"stock"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	product, err := pc.Products.Update(c.Context(), uint(id), service.ProductUpdate{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		ImageURL:    body.ImageURL,
		Category:    body.Category,
		Stock:       body.Stock,
	})
	if err != nil {
		return respondErr(c, err)
	}

	pc.invalidate(c.Context())
	pc.index(product)
	return c.JSON(fiber.Map{"message": "product updated successfully", "product": product})
}

func (pc *ProductController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := pc.Products.Delete(c.Context(), uint(id)); err != nil {
		return respondErr(c, err)
	}

	pc.invalidate(c.Context())
	if pc.Search != nil {
		if err := pc.Search.DeleteProduct(context.Background(), uint(id)); err != nil {
			log.Printf("failed to remove product %d from search index: %v", id, err)
		}
	}
	return c.JSON(fiber.Map{"message": "product deleted successfully"})
}

// SearchProducts queries the Elasticsearch index.
func (pc *ProductController) SearchProducts(c *fiber.Ctx) error {
	if pc.Search == nil {
		return c.Status(503).JSON(fiber.Map{"error": "search is not available"})
	}

	query := c.Query("q")
	if query == "" {
		return c.Status(400).JSON(fiber.Map{"error": "q is required"})
	}

	products, err := pc.Search.SearchProducts(
		c.Context(),
		query,
		c.Query("category"),
		c.Query("min_price"),
		c.Query("max_price"),
	)
	if err != nil {
		log.Printf("product search failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "search failed"})
	}
	return c.JSON(products)
}

func (pc *ProductController) invalidate(ctx context.Context) {
	pc.Redis.Del(ctx, productsCacheKey)
}

func (pc *ProductController) index(p *model.Product) {
	if pc.Search == nil {
		return
	}
	if err := pc.Search.IndexProduct(context.Background(), p); err != nil {
		log.Printf("failed to index product %d: %v", p.ID, err)
	}
}
