package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kanishkarathore/mosspay-project/internal/delivery/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) Handle(c *fiber.Ctx) error {
	caller := middleware.CallerFrom(c)
	return c.JSON(fiber.Map{
		"id":   caller.ID,
		"role": caller.Role,
	})
}
