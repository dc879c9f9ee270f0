package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	authuc "github.com/kanishkarathore/mosspay-project/internal/usecase/auth"
)

type LoginHandler struct {
	uc *authuc.LoginUsecase
}

func NewLoginHandler(uc *authuc.LoginUsecase) *LoginHandler {
	return &LoginHandler{uc: uc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Vendor and Customer share one flow; the role only picks the table the
// credentials are checked against and the typ claim of the token.
func (h *LoginHandler) Vendor(c *fiber.Ctx) error {
	return h.handle(c, authuc.RoleVendor)
}

func (h *LoginHandler) Customer(c *fiber.Ctx) error {
	return h.handle(c, authuc.RoleCustomer)
}

func (h *LoginHandler) handle(c *fiber.Ctx, role authuc.Role) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json body")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	res, err := h.uc.Execute(c.Context(), role, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
