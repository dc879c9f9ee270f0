// Package httperr renders every failed request as
// {"error": <kind>, "message": <text>}.
package httperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
	"github.com/kanishkarathore/mosspay-project/internal/metrics"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:         fiber.StatusBadRequest,
	apperr.KindUnauthorized:       fiber.StatusUnauthorized,
	apperr.KindForbidden:          fiber.StatusForbidden,
	apperr.KindNotFound:           fiber.StatusNotFound,
	apperr.KindAlreadyClaimed:     fiber.StatusConflict,
	apperr.KindInsufficientStock:  fiber.StatusConflict,
	apperr.KindInsufficientPoints: fiber.StatusConflict,
	apperr.KindStorage:            fiber.StatusInternalServerError,
}

func Status(kind apperr.Kind) int {
	if s, ok := statusByKind[kind]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

// kindForStatus classifies errors raised by fiber itself or by middleware.
func kindForStatus(code int) apperr.Kind {
	switch code {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return apperr.KindValidation
	case fiber.StatusUnauthorized:
		return apperr.KindUnauthorized
	case fiber.StatusForbidden:
		return apperr.KindForbidden
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return apperr.KindNotFound
	}
	return apperr.KindStorage
}

// Handler is the fiber.Config ErrorHandler.
func Handler(log *zap.Logger, m *metrics.Metrics) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		var (
			kind   apperr.Kind
			status int
			msg    string
		)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			kind = kindForStatus(fe.Code)
			msg = fe.Message
		} else {
			kind = apperr.KindOf(err)
			status = Status(kind)
			msg = apperr.Message(err)
		}

		op := c.Method() + " " + c.Route().Path
		m.Failure(op, string(kind))

		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("op", op),
				zap.Any("requestId", c.Locals("requestid")),
				zap.Error(err),
			)
		}

		return c.Status(status).JSON(fiber.Map{
			"error":   string(kind),
			"message": msg,
		})
	}
}
