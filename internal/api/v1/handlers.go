package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/ManuelReschke/LeadPay/app/controllers"
)

// Pong is the ping response body
type Pong struct {
	Ping string `json:"ping"`
}

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (s *APIServer) ListPayments(c *fiber.Ctx) error {
	return controllers.HandleListPayments(c)
}

// InitiatePayment is the JSON API alias of POST /initiate.
func (s *APIServer) InitiatePayment(c *fiber.Ctx) error {
	return controllers.HandleInitiatePayment(c)
}

// PaymentCallback is the API alias of POST /callback.
func (s *APIServer) PaymentCallback(c *fiber.Ctx) error {
	return controllers.HandlePaymentCallback(c)
}

func (s *APIServer) GetPaymentOutcomes(c *fiber.Ctx) error {
	return controllers.HandlePaymentOutcomes(c)
}

// GetPayment returns a stored payment by order id.
// The controller reads orderId from route params; the wrapper already validated it.
func (s *APIServer) GetPayment(c *fiber.Ctx, orderID string) error {
	return controllers.HandleGetPayment(c)
}

func (s *APIServer) CreateComment(c *fiber.Ctx) error {
	return controllers.HandleCreateComment(c)
}

func (s *APIServer) ListComments(c *fiber.Ctx, documentID string) error {
	return controllers.HandleListComments(c)
}

// GetLeadPaymentStatus returns the payment status recorded on a lead.
func (s *APIServer) GetLeadPaymentStatus(c *fiber.Ctx, orderID string) error {
	return controllers.HandleLeadPaymentStatus(c)
}
