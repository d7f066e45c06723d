package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/b-himadri/bakery-backend-api/model"
	"github.com/b-himadri/bakery-backend-api/service"
)

type AuthController struct {
	Stores    service.Stores
	Carts     *service.CartService
	JWTSecret string
	AdminPin  string
}

func (ac *AuthController) signToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.JWTSecret))
}

func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		AdminPin string `json:"admin_pin"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name, email and password are required"})
	}

	existing, err := ac.Stores.Users().GetByEmail(c.Context(), body.Email)
	if err != nil {
		return respondErr(c, err)
	}
	if existing != nil {
		return c.Status(400).JSON(fiber.Map{"error": "email already in use"})
	}

	role := body.Role
	if role == "" {
		role = model.RoleUser
	}
	if role == model.RoleAdmin && body.AdminPin != ac.AdminPin {
		return c.Status(403).JSON(fiber.Map{"error": "invalid admin access key"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), 12)
	if err != nil {
		return respondErr(c, err)
	}

	user := &model.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := ac.Stores.Users().Create(c.Context(), user); err != nil {
		return respondErr(c, err)
	}

	token, err := ac.signToken(user)
	if err != nil {
		return respondErr(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"user": user, "token": token})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	user, err := ac.Stores.Users().GetByEmail(c.Context(), body.Email)
	if err != nil {
		return respondErr(c, err)
	}
	if user == nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid email or password"})
	}

	token, err := ac.signToken(user)
	if err != nil {
		return respondErr(c, err)
	}

	// The guest cart for this session, if any, folds into the user's cart.
	// A merge failure must not fail the login.
	if sessionID := c.Get("X-Session-Id"); sessionID != "" {
		if err := ac.Carts.MergeOnLogin(c.Context(), user.ID, sessionID); err != nil {
			log.Printf("cart merge failed for user %d: %v", user.ID, err)
		}
	}

	return c.JSON(fiber.Map{"user": user, "token": token})
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	user, err := ac.Stores.Users().GetByID(c.Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	if user == nil {
		return c.Status(404).JSON(fiber.Map{"error": "user not found"})
	}
	return c.JSON(fiber.Map{"user": user})
}

func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	user, err := ac.Stores.Users().GetByID(c.Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	if user == nil {
		return c.Status(404).JSON(fiber.Map{"error": "user not found"})
	}

	if body.Name != "" {
		user.Name = body.Name
	}
	if body.Email != "" {
		user.Email = body.Email
	}
	if body.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.OldPassword)); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "old password is incorrect"})
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), 12)
		if err != nil {
			return respondErr(c, err)
		}
		user.Password = string(hashed)
	}

	if err := ac.Stores.Users().Save(c.Context(), user); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// AddAdmin creates another admin account. Route is admin-gated.
func (ac *AuthController) AddAdmin(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name, email and password are required"})
	}

	existing, err := ac.Stores.Users().GetByEmail(c.Context(), body.Email)
	if err != nil {
		return respondErr(c, err)
	}
	if existing != nil {
		return c.Status(400).JSON(fiber.Map{"error": "email already in use"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), 12)
	if err != nil {
		return respondErr(c, err)
	}

	admin := &model.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: string(hashed),
		Role:     model.RoleAdmin,
	}
	if err := ac.Stores.Users().Create(c.Context(), admin); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"admin": admin})
}
