package paytm

import (
	"strings"

	"github.com/ManuelReschke/LeadPay/app/models"
)

// StatusToOutcome maps the gateway's STATUS vocabulary onto internal outcomes.
func StatusToOutcome(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "TXN_SUCCESS":
		return models.PaymentOutcomeSuccess
	case "TXN_FAILURE":
		return models.PaymentOutcomeFailure
	case "PENDING", "OPEN":
		return models.PaymentOutcomePending
	default:
		return models.PaymentOutcomeUnknown
	}
}
