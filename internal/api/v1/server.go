package apiv1

import (
	"github.com/gofiber/fiber/v2"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /ping)
	GetPing(c *fiber.Ctx) error
	// (GET /payments)
	ListPayments(c *fiber.Ctx) error
	// (POST /payments/initiate)
	InitiatePayment(c *fiber.Ctx) error
	// (POST /payments/callback)
	PaymentCallback(c *fiber.Ctx) error
	// (GET /payments/outcomes)
	GetPaymentOutcomes(c *fiber.Ctx) error
	// (GET /payments/{orderId})
	GetPayment(c *fiber.Ctx, orderID string) error
	// (POST /comments)
	CreateComment(c *fiber.Ctx) error
	// (GET /comments/{documentId})
	ListComments(c *fiber.Ctx, documentID string) error
	// (GET /leads/{orderId})
	GetLeadPaymentStatus(c *fiber.Ctx, orderID string) error
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (siw *ServerInterfaceWrapper) GetPayment(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if orderID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid format for parameter orderId")
	}
	return siw.Handler.GetPayment(c, orderID)
}

func (siw *ServerInterfaceWrapper) ListComments(c *fiber.Ctx) error {
	documentID := c.Params("documentId")
	if documentID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid format for parameter documentId")
	}
	return siw.Handler.ListComments(c, documentID)
}

func (siw *ServerInterfaceWrapper) GetLeadPaymentStatus(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if orderID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid format for parameter orderId")
	}
	return siw.Handler.GetLeadPaymentStatus(c, orderID)
}

// RegisterHandlers creates http.Handler with routing matching the API description.
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.Get("/ping", si.GetPing)
	router.Get("/payments", si.ListPayments)
	router.Post("/payments/initiate", si.InitiatePayment)
	router.Post("/payments/callback", si.PaymentCallback)
	router.Get("/payments/outcomes", si.GetPaymentOutcomes)
	router.Get("/payments/:orderId", wrapper.GetPayment)
	router.Post("/comments", si.CreateComment)
	router.Get("/comments/:documentId", wrapper.ListComments)
	router.Get("/leads/:orderId", wrapper.GetLeadPaymentStatus)
}
