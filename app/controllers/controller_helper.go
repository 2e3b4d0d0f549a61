package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/LeadPay/internal/pkg/payment"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// paymentErrorStatus maps a payment error kind to its HTTP status.
func paymentErrorStatus(err error) int {
	switch payment.KindOf(err) {
	case payment.KindValidation, payment.KindSecurity:
		return fiber.StatusBadRequest
	case payment.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// writePaymentError renders err as {success:false, message}. With withCause
// set, 500 responses also carry the underlying error text.
func writePaymentError(c *fiber.Ctx, err error, fallback string, withCause bool) error {
	status := paymentErrorStatus(err)
	message := fallback

	var perr *payment.Error
	if errors.As(err, &perr) && perr.Message != "" {
		message = perr.Message
	}

	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if withCause && status == fiber.StatusInternalServerError {
		cause := err
		if perr != nil && perr.Err != nil {
			cause = perr.Err
		}
		body["error"] = cause.Error()
	}
	return c.Status(status).JSON(body)
}

// pagination reads ?page and ?limit (1-based page).
func pagination(c *fiber.Ctx) (offset, limit int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return (page - 1) * limit, limit
}
