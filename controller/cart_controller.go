package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/b-himadri/bakery-backend-api/service"
)

type CartController struct {
	Carts *service.CartService
}

// owner resolves the cart identity: the authenticated user when present,
// otherwise the guest session from X-Session-Id. A missing session id is
// minted here and echoed back so the client can keep using it.
func (cc *CartController) owner(c *fiber.Ctx) service.CartOwner {
	if userID, ok := c.Locals("user_id").(uint); ok {
		return service.CartOwner{UserID: userID}
	}

	sessionID := c.Get("X-Session-Id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Set("X-Session-Id", sessionID)
	return service.CartOwner{SessionID: sessionID}
}

func (cc *CartController) Get(c *fiber.Ctx) error {
	cart, err := cc.Carts.Get(c.Context(), cc.owner(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(cart)
}

func (cc *CartController) AddItem(c *fiber.Ctx) error {
	var body struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	cart, err := cc.Carts.AddItem(c.Context(), cc.owner(c), body.ProductID, body.Quantity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(cart)
}

func (cc *CartController) UpdateItem(c *fiber.Ctx) error {
	var body struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	cart, err := cc.Carts.UpdateItem(c.Context(), cc.owner(c), body.ProductID, body.Quantity)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(cart)
}

func (cc *CartController) RemoveItem(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productID"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid product id"})
	}

	cart, err := cc.Carts.RemoveItem(c.Context(), cc.owner(c), uint(productID))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(cart)
}
