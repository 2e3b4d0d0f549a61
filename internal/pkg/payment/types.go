package payment

import (
	"context"

	"github.com/ManuelReschke/LeadPay/app/models"
	"github.com/ManuelReschke/LeadPay/internal/pkg/paytm"
)

// InitiateRequest is the customer input for a new hosted-page payment.
type InitiateRequest struct {
	CustomerID string `validate:"required,max=191"`
	Amount     string `validate:"required,max=32"`
}

// Initiation is everything needed to redirect the browser to the gateway.
type Initiation struct {
	Payment        *models.Payment
	Params         paytm.Params
	TransactionURL string
}

// CallbackResult describes a reconciled gateway callback.
type CallbackResult struct {
	OrderID   string
	Status    string
	Outcome   string
	Payment   *models.Payment
	LeadFound bool
	// Redelivered is set when the payment already carried a gateway status.
	Redelivered bool
}

// OutcomeRecorder counts reconciled outcomes. Failures are never fatal.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, outcome string) error
}

// CallbackArchiver stores verified callback payloads. Failures are never fatal.
type CallbackArchiver interface {
	ArchiveCallback(ctx context.Context, orderID string, fields map[string]string) error
}
