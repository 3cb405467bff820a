package handlers

import (
	"errors"

	"produk/internal/services"
	"produk/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// MsgProductNotFound is the detail returned for unknown product IDs.
const MsgProductNotFound = "Product doesn't exist"

// DetailResponse is the body of every error response.
type DetailResponse struct {
	Detail interface{} `json:"detail"`
}

func (h *ProductHandler) validationError(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	h.log.WithFields(logrus.Fields{"path": c.Path(), "errors": len(verrs)}).Debug("Rejected invalid product request")
	return c.Status(fiber.StatusUnprocessableEntity).JSON(DetailResponse{Detail: verrs})
}

func (h *ProductHandler) serviceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(DetailResponse{Detail: MsgProductNotFound})
	}
	h.log.WithError(err).WithField("path", c.Path()).Error("Product operation failed")
	return err
}

// ErrorHandler renders errors that escaped a handler as {"detail": ...}.
func ErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			logger.WithError(err).WithFields(logrus.Fields{"method": c.Method(), "path": c.Path()}).Error("Request failed")
		}
		return c.Status(code).JSON(DetailResponse{Detail: message})
	}
}
