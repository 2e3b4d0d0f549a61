package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/LeadPay/app/models"
	"github.com/ManuelReschke/LeadPay/app/repository"
	"github.com/ManuelReschke/LeadPay/internal/pkg/payment"
	"github.com/ManuelReschke/LeadPay/views"
)

const paymentRequestTimeout = 15 * time.Second

// OutcomeSnapshotter reports how many callbacks ended in each outcome.
type OutcomeSnapshotter interface {
	Snapshot(ctx context.Context) (map[string]int64, error)
}

// PaymentController serves the gateway-facing initiation/callback endpoints
// and the payment read API.
type PaymentController struct {
	svc      *payment.Service
	payments repository.PaymentRepository
	outcomes OutcomeSnapshotter
}

// NewPaymentController creates a payment controller. payments and outcomes
// may be nil when the read API is not mounted.
func NewPaymentController(svc *payment.Service, payments repository.PaymentRepository, outcomes OutcomeSnapshotter) *PaymentController {
	return &PaymentController{
		svc:      svc,
		payments: payments,
		outcomes: outcomes,
	}
}

// HandleInitiate signs a new order and answers with the auto-submitting
// redirect form.
func (pc *PaymentController) HandleInitiate(c *fiber.Ctx) error {
	var req initiatePaymentRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": payment.MsgInitiateMissingFields,
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), paymentRequestTimeout)
	defer cancel()

	initiation, err := pc.svc.Initiate(ctx, req.toServiceRequest())
	if err != nil {
		if paymentErrorStatus(err) == fiber.StatusInternalServerError {
			log.Errorf("[PaymentController] Initiation failed: %v", err)
		}
		return writePaymentError(c, err, payment.MsgInitiateFailed, false)
	}

	return c.Render(views.PaymentRedirect, fiber.Map{
		"TransactionURL": initiation.TransactionURL,
		"Params":         initiation.Params,
	})
}

// HandleCallback reconciles the gateway's server-to-server callback.
func (pc *PaymentController) HandleCallback(c *fiber.Ctx) error {
	fields, err := parseCallbackFields(c)
	if err != nil {
		log.Warnf("[PaymentController] Unreadable callback body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": payment.MsgCallbackEmpty,
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), paymentRequestTimeout)
	defer cancel()

	result, err := pc.svc.ReconcileCallback(ctx, fields)
	if err != nil {
		if paymentErrorStatus(err) == fiber.StatusInternalServerError {
			log.Errorf("[PaymentController] Callback failed: %v", err)
		}
		return writePaymentError(c, err, payment.MsgCallbackFailed, true)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Payment status updated successfully. orderId: %s, Status: %s", result.OrderID, result.Status),
	})
}

// HandleGetPayment returns one payment by order id.
func (pc *PaymentController) HandleGetPayment(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	p, err := pc.payments.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": payment.MsgPaymentNotFound,
			})
		}
		log.Errorf("[PaymentController] Lookup of %s failed: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Payment lookup failed.",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"payment": p,
	})
}

// HandleListPayments lists payments newest first, optionally for one customer.
func (pc *PaymentController) HandleListPayments(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	customerID := c.Query("customerId")

	var (
		payments []models.Payment
		err      error
	)
	if customerID != "" {
		payments, err = pc.payments.ListByCustomerID(customerID, offset, limit)
	} else {
		payments, err = pc.payments.List(offset, limit)
	}
	if err != nil {
		log.Errorf("[PaymentController] Listing payments failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Payment lookup failed.",
		})
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	resp := fiber.Map{
		"success":  true,
		"payments": payments,
		"offset":   offset,
		"limit":    limit,
	}
	if customerID == "" {
		if total, err := pc.payments.Count(); err == nil {
			resp["total"] = total
		} else {
			log.Warnf("[PaymentController] Counting payments failed: %v", err)
		}
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// HandleOutcomes returns the per-outcome callback counters.
func (pc *PaymentController) HandleOutcomes(c *fiber.Ctx) error {
	if pc.outcomes == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "Outcome counters are not available.",
		})
	}
	counts, err := pc.outcomes.Snapshot(c.UserContext())
	if err != nil {
		log.Errorf("[PaymentController] Reading outcome counters failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Outcome counters are not available.",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"outcomes": counts,
	})
}
