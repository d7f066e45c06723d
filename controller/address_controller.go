package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/b-himadri/bakery-backend-api/model"
	"github.com/b-himadri/bakery-backend-api/service"
)

type AddressController struct {
	Addresses *service.AddressService
}

func (ac *AddressController) List(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	addresses, err := ac.Addresses.List(c.Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"addresses": addresses})
}

func (ac *AddressController) Create(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body model.Address
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	body.ID = 0
	body.UserID = userID

	address, err := ac.Addresses.Add(c.Context(), &body)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "address added successfully", "address": address})
}

func (ac *AddressController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	userID := c.Locals("user_id").(uint)

	var body struct {
		AddressLine1 *string `json:"address_line1"`
		AddressLine2 *string `json:"address_line2"`
		City         *string `json:"city"`
		State        *string `json:"state"`
		PostalCode   *string `json:"postal_code"`
		Country      *string `json:"country"`
		AddressType  *string `json:"address_type"`
		IsDefault    *bool   `json:"is_default"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	address, err := ac.Addresses.Update(c.Context(), uint(id), userID, service.AddressUpdate{
		AddressLine1: body.AddressLine1,
		AddressLine2: body.AddressLine2,
		City:         body.City,
		State:        body.State,
		PostalCode:   body.PostalCode,
		Country:      body.Country,
		AddressType:  body.AddressType,
		IsDefault:    body.IsDefault,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "address updated successfully", "address": address})
}

func (ac *AddressController) SetDefault(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	userID := c.Locals("user_id").(uint)

	address, err := ac.Addresses.SetDefault(c.Context(), uint(id), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "address set as default successfully", "address": address})
}

func (ac *AddressController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}
	userID := c.Locals("user_id").(uint)

	if err := ac.Addresses.Delete(c.Context(), uint(id), userID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "address deleted successfully"})
}
