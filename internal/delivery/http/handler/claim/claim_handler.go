package claim

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kanishkarathore/mosspay-project/internal/delivery/middleware"
	"github.com/kanishkarathore/mosspay-project/internal/metrics"
	claimuc "github.com/kanishkarathore/mosspay-project/internal/usecase/claim"
)

type Handler struct {
	uc      *claimuc.Usecase
	metrics *metrics.Metrics
}

func New(uc *claimuc.Usecase, m *metrics.Metrics) *Handler {
	return &Handler{uc: uc, metrics: m}
}

func (h *Handler) Claim(c *fiber.Ctx) error {
	var in claimuc.Input
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json body")
	}

	out, err := h.uc.Claim(c.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		return err
	}
	h.metrics.BillClaimed(out.PointsAwarded)
	return c.JSON(out)
}
