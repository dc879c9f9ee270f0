package item

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kanishkarathore/mosspay-project/internal/delivery/middleware"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/catalog"
)

type Handler struct {
	uc *catalog.Usecase
}

func New(uc *catalog.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var req catalog.CreateInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json body")
	}

	out, err := h.uc.Create(c.Context(), middleware.CallerFrom(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), middleware.CallerFrom(c), catalog.ListQuery{
		InStockOnly: c.QueryBool("inStock", false),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": out})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	out, err := h.uc.Get(c.Context(), middleware.CallerFrom(c), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
