package bill

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kanishkarathore/mosspay-project/internal/delivery/middleware"
	"github.com/kanishkarathore/mosspay-project/internal/metrics"
	billuc "github.com/kanishkarathore/mosspay-project/internal/usecase/bill"
)

type Handler struct {
	uc      *billuc.Usecase
	metrics *metrics.Metrics
}

func New(uc *billuc.Usecase, m *metrics.Metrics) *Handler {
	return &Handler{uc: uc, metrics: m}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in billuc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json body")
	}

	out, err := h.uc.Create(c.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		return err
	}
	h.metrics.BillCreated()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List serves both the vendor and the customer history; the caller's role
// decides which side of the bill is matched.
func (h *Handler) List(c *fiber.Ctx) error {
	caller := middleware.CallerFrom(c)
	q := billuc.ListQuery{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
		Status: c.Query("status"),
	}

	var (
		out []billuc.Bill
		err error
	)
	if caller.IsVendor() {
		out, err = h.uc.ListForVendor(c.Context(), caller, q)
	} else {
		out, err = h.uc.ListForCustomer(c.Context(), caller, q)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": out})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bill id")
	}

	out, err := h.uc.Get(c.Context(), middleware.CallerFrom(c), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
