package controller

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/b-himadri/bakery-backend-api/model"
	"github.com/b-himadri/bakery-backend-api/service"
)

type OrderController struct {
	Checkout *service.CheckoutEngine
	Orders   *service.OrderService
	Redis    *redis.Client
}

func ordersCacheKey(userID uint) string {
	return fmt.Sprintf("orders:%d", userID)
}

func (oc *OrderController) isAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("user_role").(string)
	return role == model.RoleAdmin
}

// Create places an order from the user's cart.
func (oc *OrderController) Create(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		AddressID     uint   `json:"address_id"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	order, err := oc.Checkout.PlaceOrder(c.Context(), userID, body.AddressID, body.PaymentMethod)
	if err != nil {
		return respondErr(c, err)
	}

	oc.Redis.Del(c.Context(), ordersCacheKey(userID))
	return c.Status(201).JSON(fiber.Map{"message": "order placed successfully", "order": order})
}

// List returns the caller's orders, or every order for admins.
func (oc *OrderController) List(c *fiber.Ctx) error {
	ctx := c.Context()

	if oc.isAdmin(c) {
		orders, err := oc.Orders.ListAll(ctx)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(fiber.Map{"orders": orders})
	}

	userID := c.Locals("user_id").(uint)
	key := ordersCacheKey(userID)

	if cached, err := oc.Redis.Get(ctx, key).Result(); err == nil {
		c.Set("Content-Type", "application/json")
		return c.SendString(cached)
	}

	orders, err := oc.Orders.ListForUser(ctx, userID)
	if err != nil {
		return respondErr(c, err)
	}

	if data, err := json.Marshal(fiber.Map{"orders": orders}); err == nil {
		oc.Redis.Set(ctx, key, data, 5*time.Minute)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (oc *OrderController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	userID := c.Locals("user_id").(uint)

	order, err := oc.Orders.Get(c.Context(), uint(id), userID, oc.isAdmin(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"order": order})
}

// UpdateStatus sets an order's status. Route is admin-gated.
func (oc *OrderController) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	order, err := oc.Orders.UpdateStatus(c.Context(), uint(id), body.Status)
	if err != nil {
		return respondErr(c, err)
	}

	oc.Redis.Del(c.Context(), ordersCacheKey(order.UserID))
	return c.JSON(fiber.Map{"message": "order status updated successfully", "order": order})
}
