package service

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
)

// FileStore is what the handlers need from blob storage. storage.B2Storage
// satisfies it; tests swap in a fake.
type FileStore interface {
	Upload(ctx context.Context, dir, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals("user_id").(uuid.UUID)
	return id, ok
}

func pageParams(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func buildMeta(page, limit int, total int64, sortBy, order, search string) model.MetaInfo {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return model.MetaInfo{
		Page:   page,
		Limit:  limit,
		Total:  total,
		Pages:  pages,
		SortBy: sortBy,
		Order:  order,
		Search: search,
	}
}

func invalidSession(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(model.ErrorResponse{
		Success: false,
		Message: "Invalid user session",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
		Success: false,
		Message: msg,
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(model.ErrorResponse{
		Success: false,
		Message: msg,
	})
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
		Success: false,
		Message: msg,
	})
}
