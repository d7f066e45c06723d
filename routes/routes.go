package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/b-himadri/bakery-backend-api/controller"
	"github.com/b-himadri/bakery-backend-api/middleware"
	"github.com/b-himadri/bakery-backend-api/model"
)

type Controllers struct {
	Auth      *controller.AuthController
	Products  *controller.ProductController
	Carts     *controller.CartController
	Addresses *controller.AddressController
	Orders    *controller.OrderController
}

func Register(app *fiber.App, ctrl Controllers, jwtSecret string) {
	auth := middleware.AuthRequired(jwtSecret)
	optionalAuth := middleware.OptionalAuth(jwtSecret)
	adminOnly := middleware.RoleRequired(model.RoleAdmin)

	api := app.Group("/api")

	a := api.Group("/auth")
	a.Post("/signup", ctrl.Auth.Signup)
	a.Post("/login", ctrl.Auth.Login)
	a.Get("/me", auth, ctrl.Auth.Me)
	a.Patch("/profile", auth, ctrl.Auth.UpdateProfile)
	a.Post("/admins", auth, adminOnly, ctrl.Auth.AddAdmin)

	p := api.Group("/products")
	p.Get("/", ctrl.Products.List)
	p.Get("/search", ctrl.Products.SearchProducts)
	p.Get("/all", auth, adminOnly, ctrl.Products.ListAdmin)
	p.Get("/:id", ctrl.Products.Get)
	p.Post("/", auth, adminOnly, ctrl.Products.Create)
	p.Patch("/:id", auth, adminOnly, ctrl.Products.Update)
	p.Delete("/:id", auth, adminOnly, ctrl.Products.Delete)

	c := api.Group("/cart")
	c.Get("/", optionalAuth, ctrl.Carts.Get)
	c.Post("/items", optionalAuth, ctrl.Carts.AddItem)
	c.Patch("/items", optionalAuth, ctrl.Carts.UpdateItem)
	c.Delete("/items/:productID", optionalAuth, ctrl.Carts.RemoveItem)

	ad := api.Group("/addresses")
	ad.Get("/", auth, ctrl.Addresses.List)
	ad.Post("/", auth, ctrl.Addresses.Create)
	ad.Patch("/:id/default", auth, ctrl.Addresses.SetDefault)
	ad.Patch("/:id", auth, ctrl.Addresses.Update)
	ad.Delete("/:id", auth, ctrl.Addresses.Delete)

	o := api.Group("/orders")
	o.Post("/", auth, ctrl.Orders.Create)
	o.Get("/", auth, ctrl.Orders.List)
	o.Get("/:id", auth, ctrl.Orders.Get)
	o.Patch("/:id/status", auth, adminOnly, ctrl.Orders.UpdateStatus)
}
