package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/LeadPay/app/repository"
)

// LeadController exposes the payment status the callback wrote onto a lead
type LeadController struct {
	leadRepo repository.LeadRepository
}

// NewLeadController creates a new lead controller with repository
func NewLeadController(leadRepo repository.LeadRepository) *LeadController {
	return &LeadController{
		leadRepo: leadRepo,
	}
}

// HandlePaymentStatus returns the lead matching an order id
func (lc *LeadController) HandlePaymentStatus(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	lead, err := lc.leadRepo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Lead not found.",
			})
		}
		log.Errorf("[LeadController] Lookup of %s failed: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Lead lookup failed.",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"orderId":       lead.OrderID,
		"paymentStatus": lead.PaymentStatus,
	})
}
