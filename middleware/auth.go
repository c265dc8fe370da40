package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
	"github.com/baffa-m/gamjifoundation/app/repo"
	"github.com/baffa-m/gamjifoundation/helper"
)

func AuthRequired(users repo.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := strings.TrimSpace(c.Get("Authorization"))
		if bearer == "" {
			return unauthorized(c, "Token not provided")
		}

		if len(bearer) < 7 || !strings.EqualFold(bearer[:7], "Bearer ") {
			return unauthorized(c, "Invalid bearer token format")
		}
		token := strings.TrimSpace(bearer[7:])

		claims, err := helper.ValidateToken(token)
		if err != nil {
			return unauthorized(c, "Invalid token")
		}

		if claims.Type != "access" {
			return unauthorized(c, "Invalid token type")
		}

		if blacklisted, err := users.IsTokenBlacklisted(token); err == nil && blacklisted {
			return unauthorized(c, "Token has been revoked")
		}

		if claims.UserID == uuid.Nil || claims.Email == "" || claims.Role == "" {
			return unauthorized(c, "Incomplete token claims")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", strings.ToLower(claims.Role))
		c.Locals("user", claims)

		return c.Next()
	}
}

// RoleRequired gates a route group to one or more roles; AuthRequired must
// run first.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(model.ErrorResponse{
			Success: false,
			Message: "Access denied",
		})
	}
}

func PermissionsRequired(requiredPermissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*model.JWTClaims)
		if !ok {
			return unauthorized(c, "User claims not found")
		}

		for _, required := range requiredPermissions {
			for _, userPerm := range claims.Permissions {
				if required == userPerm {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(model.ErrorResponse{
			Success: false,
			Message: "Access denied",
		})
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
		Success: false,
		Message: msg,
	})
}
