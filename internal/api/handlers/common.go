package handlers

import (
	"cookbook-backend/domain"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUserID reads the id placed in Locals by the auth middleware.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrTokenInvalid
	}
	return id, nil
}

// viewerID is the optional caller identity; nil for anonymous requests.
func viewerID(c *fiber.Ctx) *uuid.UUID {
	id, err := currentUserID(c)
	if err != nil {
		return nil
	}
	return &id
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}
	return id, nil
}

func pagination(c *fiber.Ctx) domain.PaginationRequest {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}
	return domain.PaginationRequest{Page: page, Limit: limit}
}

func queryInt(c *fiber.Ctx, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// queryList splits a comma separated query value, dropping blanks.
func queryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, part := range strings.Split(c.Query(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseBody decodes and validates the request body into req.
func parseBody(c *fiber.Ctx, v *validator.Validate, req any) error {
	if err := c.BodyParser(req); err != nil {
		return domain.BadRequest(domain.MessageFailedBodyRequest)
	}
	if err := v.Struct(req); err != nil {
		return domain.BadRequest(err.Error())
	}
	return nil
}
