package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every failed JSON request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the body of JSON requests without a resource to return.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// JSONError sends {"error": msg} with status.
func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

// JSONSuccess sends {"success": true}.
func JSONSuccess(c *fiber.Ctx) error {
	return c.JSON(SuccessResponse{Success: true})
}

// ParamID parses the :id route parameter as a positive integer.
func ParamID(c *fiber.Ctx) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}
