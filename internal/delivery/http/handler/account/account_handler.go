package account

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kanishkarathore/mosspay-project/internal/delivery/middleware"
	"github.com/kanishkarathore/mosspay-project/internal/metrics"
	accountuc "github.com/kanishkarathore/mosspay-project/internal/usecase/account"
)

type Handler struct {
	uc      *accountuc.Usecase
	metrics *metrics.Metrics
}

func New(uc *accountuc.Usecase, m *metrics.Metrics) *Handler {
	return &Handler{uc: uc, metrics: m}
}

func (h *Handler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), middleware.CallerFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *Handler) Rewards(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": h.uc.Rewards()})
}

func (h *Handler) Redeem(c *fiber.Ctx) error {
	var in accountuc.RedeemInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json body")
	}

	out, err := h.uc.Redeem(c.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		return err
	}
	h.metrics.Redeemed()
	return c.JSON(out)
}
