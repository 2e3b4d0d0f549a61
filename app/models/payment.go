package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Internal payment outcomes. The gateway's own status vocabulary is kept
// verbatim in PaymentStatus; PaymentOutcome is the closed set we reason about.
const (
	PaymentOutcomeSuccess = "success"
	PaymentOutcomeFailure = "failure"
	PaymentOutcomePending = "pending"
	PaymentOutcomeUnknown = "unknown"
)

// PaymentOutcomes lists every internal outcome in a stable order.
var PaymentOutcomes = []string{
	PaymentOutcomeSuccess,
	PaymentOutcomeFailure,
	PaymentOutcomePending,
	PaymentOutcomeUnknown,
}

// Payment is a hosted-payment-page transaction. It is created without any
// status fields and filled in by the gateway callback; a redelivered
// callback overwrites the previous values.
type Payment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderID         string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_payments_order_id" json:"orderId" validate:"required,max=64"`
	CustomerID      string    `gorm:"type:varchar(191);not null;index" json:"customerId" validate:"required,max=191"`
	Amount          string    `gorm:"type:varchar(32);not null" json:"amount" validate:"required,max=32"`
	TransactionID   *string   `gorm:"type:varchar(191);default:null" json:"transactionId,omitempty"`
	PaymentStatus   *string   `gorm:"type:varchar(64);default:null;index" json:"paymentStatus,omitempty"`
	PaymentOutcome  *string   `gorm:"type:varchar(16);default:null;index" json:"paymentOutcome,omitempty"`
	PaymentMode     *string   `gorm:"type:varchar(64);default:null" json:"paymentMode,omitempty"`
	TransactionDate *string   `gorm:"type:varchar(64);default:null" json:"transactionDate,omitempty"`
	ResponseMessage *string   `gorm:"type:varchar(255);default:null" json:"responseMessage,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

// IsSettled reports whether the gateway already reported an outcome.
func (p *Payment) IsSettled() bool {
	return p.PaymentStatus != nil
}

// PaymentCallbackUpdate carries the fields a gateway callback overwrites.
// Nil optional fields were absent from the callback and keep their stored value.
type PaymentCallbackUpdate struct {
	PaymentStatus   string
	PaymentOutcome  string
	TransactionID   *string
	Amount          *string
	PaymentMode     *string
	TransactionDate *string
	ResponseMessage *string
}

// Columns returns the column/value map used for the update statement.
func (u PaymentCallbackUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"payment_status":  u.PaymentStatus,
		"payment_outcome": u.PaymentOutcome,
	}
	optional := map[string]*string{
		"transaction_id":   u.TransactionID,
		"amount":           u.Amount,
		"payment_mode":     u.PaymentMode,
		"transaction_date": u.TransactionDate,
		"response_message": u.ResponseMessage,
	}
	for col, v := range optional {
		if v != nil {
			cols[col] = *v
		}
	}
	return cols
}

// Apply copies the update onto an in-memory payment.
func (u PaymentCallbackUpdate) Apply(p *Payment) {
	p.PaymentStatus = stringPtr(u.PaymentStatus)
	p.PaymentOutcome = stringPtr(u.PaymentOutcome)
	if u.TransactionID != nil {
		p.TransactionID = stringPtr(*u.TransactionID)
	}
	if u.Amount != nil {
		p.Amount = *u.Amount
	}
	if u.PaymentMode != nil {
		p.PaymentMode = stringPtr(*u.PaymentMode)
	}
	if u.TransactionDate != nil {
		p.TransactionDate = stringPtr(*u.TransactionDate)
	}
	if u.ResponseMessage != nil {
		p.ResponseMessage = stringPtr(*u.ResponseMessage)
	}
}

func stringPtr(s string) *string {
	return &s
}
