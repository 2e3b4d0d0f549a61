package controllers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/LeadPay/app/repository"
	"github.com/ManuelReschke/LeadPay/internal/pkg/archive"
	"github.com/ManuelReschke/LeadPay/internal/pkg/cache"
	"github.com/ManuelReschke/LeadPay/internal/pkg/database"
	"github.com/ManuelReschke/LeadPay/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/LeadPay/internal/pkg/payment"
	"github.com/ManuelReschke/LeadPay/internal/pkg/paytm"
)

// Global controller instances
var (
	paymentController *PaymentController
	commentController *CommentController
	leadController    *LeadController
)

// InitializePaymentController wires the payment controller from the process
// wide database, cache and environment.
func InitializePaymentController() {
	cfg, err := paytm.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("payment gateway misconfigured: %v", err))
	}

	outcomes := counter.NewOutcomeCounter(cache.GetClient())
	opts := []payment.Option{payment.WithOutcomeRecorder(outcomes)}

	archiveCfg, err := archive.LoadConfig()
	if err != nil {
		log.Errorf("[PaymentController] Callback archive misconfigured: %v", err)
	} else if archiveCfg.IsEnabled() {
		client, err := archive.NewClient(context.Background(), archiveCfg)
		if err != nil {
			log.Errorf("[PaymentController] Callback archive unavailable: %v", err)
		} else {
			opts = append(opts, payment.WithCallbackArchiver(client))
		}
	}

	svc := payment.NewServiceFromDB(database.GetDB(), paytm.NewHMACSigner(), cfg, opts...)
	paymentController = NewPaymentController(svc, repository.GetGlobalFactory().GetPaymentRepository(), outcomes)
}

// GetPaymentController returns the global payment controller instance
func GetPaymentController() *PaymentController {
	if paymentController == nil {
		InitializePaymentController()
	}
	return paymentController
}

// InitializeCommentController initializes the global comment controller with repository
func InitializeCommentController() {
	commentController = NewCommentController(repository.GetGlobalFactory().GetCommentRepository())
}

// GetCommentController returns the global comment controller instance
func GetCommentController() *CommentController {
	if commentController == nil {
		InitializeCommentController()
	}
	return commentController
}

// InitializeLeadController initializes the global lead controller with repository
func InitializeLeadController() {
	leadController = NewLeadController(repository.GetGlobalFactory().GetLeadRepository())
}

// GetLeadController returns the global lead controller instance
func GetLeadController() *LeadController {
	if leadController == nil {
		InitializeLeadController()
	}
	return leadController
}

// Adapter functions for the router

// HandleInitiatePayment - Adapter for payment initiation
func HandleInitiatePayment(c *fiber.Ctx) error {
	return GetPaymentController().HandleInitiate(c)
}

// HandlePaymentCallback - Adapter for the gateway callback
func HandlePaymentCallback(c *fiber.Ctx) error {
	return GetPaymentController().HandleCallback(c)
}

// HandleGetPayment - Adapter for payment lookup
func HandleGetPayment(c *fiber.Ctx) error {
	return GetPaymentController().HandleGetPayment(c)
}

// HandleListPayments - Adapter for payment listing
func HandleListPayments(c *fiber.Ctx) error {
	return GetPaymentController().HandleListPayments(c)
}

// HandlePaymentOutcomes - Adapter for outcome counters
func HandlePaymentOutcomes(c *fiber.Ctx) error {
	return GetPaymentController().HandleOutcomes(c)
}

// HandleCreateComment - Adapter for comment creation
func HandleCreateComment(c *fiber.Ctx) error {
	return GetCommentController().HandleCreate(c)
}

// HandleListComments - Adapter for comment listing
func HandleListComments(c *fiber.Ctx) error {
	return GetCommentController().HandleList(c)
}

// HandleLeadPaymentStatus - Adapter for the lead payment status read
func HandleLeadPaymentStatus(c *fiber.Ctx) error {
	return GetLeadController().HandlePaymentStatus(c)
}
