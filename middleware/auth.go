package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func parseToken(tokenStr, secret string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, false
	}
	return claims, true
}

func setLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	c.Locals("user_id", uint(claims["sub"].(float64)))
	if email, ok := claims["email"].(string); ok {
		c.Locals("user_email", email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Locals("user_role", role)
	}
}

func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(401).JSON(fiber.Map{"error": "missing auth"})
		}
		var tokenStr string
		fmt.Sscanf(header, "Bearer %s", &tokenStr)

		claims, ok := parseToken(tokenStr, secret)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "invalid token"})
		}
		setLocals(c, claims)
		return c.Next()
	}
}

// OptionalAuth populates the user locals when a valid token is present but
// lets anonymous requests through. Cart endpoints rely on this: guests are
// identified by the X-Session-Id header instead.
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header != "" {
			var tokenStr string
			fmt.Sscanf(header, "Bearer %s", &tokenStr)
			if claims, ok := parseToken(tokenStr, secret); ok {
				setLocals(c, claims)
			}
		}
		return c.Next()
	}
}

func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole := c.Locals("user_role")
		if userRole == nil {
			return c.Status(403).JSON(fiber.Map{"error": "no role"})
		}

		role := userRole.(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "forbidden"})
	}
}
