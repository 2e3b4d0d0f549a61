package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ManuelReschke/LeadPay/app/models"
	"github.com/ManuelReschke/LeadPay/internal/pkg/paytm"
)

// Client-facing messages.
const (
	MsgInitiateMissingFields = "Customer ID and amount are required."
	MsgInitiateInvalidAmount = "Amount must be a positive number."
	MsgInitiateFailed        = "Payment initiation failed."
	MsgCallbackEmpty         = "Invalid callback request."
	MsgCallbackChecksum      = "Invalid checksum"
	MsgCallbackInvalid       = "Invalid payment response."
	MsgPaymentNotFound       = "Payment not found."
	MsgCallbackFailed        = "Payment callback processing failed."
)

// Service runs the hosted-payment-page initiation and callback reconciliation.
type Service struct {
	repo       Repository
	signer     paytm.Signer
	cfg        *paytm.Config
	validate   *validator.Validate
	newOrderID func() (string, error)
	outcomes   OutcomeRecorder
	archive    CallbackArchiver
}

// Option customizes a Service.
type Option func(*Service)

// WithOrderIDGenerator replaces the default order id generator.
func WithOrderIDGenerator(fn func() (string, error)) Option {
	return func(s *Service) { s.newOrderID = fn }
}

// WithOutcomeRecorder counts every reconciled outcome.
func WithOutcomeRecorder(r OutcomeRecorder) Option {
	return func(s *Service) { s.outcomes = r }
}

// WithCallbackArchiver stores every reconciled callback payload.
func WithCallbackArchiver(a CallbackArchiver) Option {
	return func(s *Service) { s.archive = a }
}

// NewService creates a payment service from an injected repository and signer.
func NewService(repo Repository, signer paytm.Signer, cfg *paytm.Config, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		signer:     signer,
		cfg:        cfg,
		validate:   validator.New(),
		newOrderID: paytm.NewOrderID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceFromDB creates a payment service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, signer paytm.Signer, cfg *paytm.Config, opts ...Option) *Service {
	return NewService(NewRepository(db), signer, cfg, opts...)
}

// Initiate signs a new order and stores its pending payment.
func (s *Service) Initiate(ctx context.Context, in InitiateRequest) (*Initiation, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.Amount = strings.TrimSpace(in.Amount)
	if err := s.validate.Struct(in); err != nil {
		return nil, newError(KindValidation, MsgInitiateMissingFields, err)
	}
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, newError(KindValidation, MsgInitiateInvalidAmount, err)
	}

	orderID, err := s.newOrderID()
	if err != nil {
		return nil, newError(KindUnexpected, MsgInitiateFailed, err)
	}

	params, err := paytm.InitiationParams(s.cfg, orderID, in.CustomerID, in.Amount).Sign(s.signer, s.cfg.MerchantKey)
	if err != nil {
		return nil, newError(KindUnexpected, MsgInitiateFailed, err)
	}

	p := &models.Payment{
		OrderID:    orderID,
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, newError(KindUnexpected, MsgInitiateFailed, err)
	}

	log.Infof("[Payment] Initiated order %s for customer %s (amount %s)", orderID, in.CustomerID, in.Amount)
	return &Initiation{
		Payment:        p,
		Params:         params,
		TransactionURL: s.cfg.TransactionURL,
	}, nil
}

// ReconcileCallback verifies a gateway callback and applies it to the payment
// and its lead. fields is not modified.
func (s *Service) ReconcileCallback(ctx context.Context, fields map[string]string) (*CallbackResult, error) {
	if len(fields) == 0 {
		return nil, newError(KindValidation, MsgCallbackEmpty, nil)
	}

	// Verification must see the mapping including CHECKSUMHASH.
	received := fields[paytm.FieldChecksum]
	valid, err := s.signer.Verify(fields, s.cfg.MerchantKey, received)
	if err != nil {
		return nil, newError(KindUnexpected, MsgCallbackFailed, err)
	}
	if !valid {
		log.Errorf("[Payment] Invalid checksum on callback for order %q, possible tampering", paytm.ResolveOrderID(fields))
		return nil, newError(KindSecurity, MsgCallbackChecksum, nil)
	}

	working := make(map[string]string, len(fields))
	for k, v := range fields {
		if k == paytm.FieldChecksum {
			continue
		}
		working[k] = v
	}

	orderID := paytm.ResolveOrderID(working)
	status := working[paytm.ResponseStatus]
	log.Infof("[Payment] Processing callback: orderId=%s STATUS=%s", orderID, status)
	if orderID == "" || status == "" {
		return nil, newError(KindValidation, MsgCallbackInvalid, nil)
	}

	outcome := paytm.StatusToOutcome(status)
	update := models.PaymentCallbackUpdate{
		PaymentStatus:   status,
		PaymentOutcome:  outcome,
		TransactionID:   presentField(working, paytm.ResponseTxnID),
		Amount:          presentField(working, paytm.ResponseTxnAmount),
		PaymentMode:     presentField(working, paytm.ResponsePaymentMode),
		TransactionDate: presentField(working, paytm.ResponseTxnDate),
		ResponseMessage: presentField(working, paytm.ResponseMessage),
	}

	result := &CallbackResult{OrderID: orderID, Status: status, Outcome: outcome}
	err = s.repo.Transaction(ctx, func(repo Repository) error {
		p, err := repo.FindPaymentForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if p == nil {
			return newError(KindNotFound, MsgPaymentNotFound, nil)
		}
		if p.IsSettled() {
			result.Redelivered = true
			log.Warnf("[Payment] Callback for already settled order %s (was %s, now %s)", orderID, *p.PaymentStatus, status)
		}
		if err := repo.ApplyCallback(ctx, p, update); err != nil {
			return err
		}
		result.Payment = p

		found, err := repo.UpdateLeadPaymentStatus(ctx, orderID, status)
		if err != nil {
			return err
		}
		result.LeadFound = found
		return nil
	})
	if err != nil {
		if KindOf(err) == KindNotFound {
			log.Errorf("[Payment] Payment not found for orderId: %s", orderID)
			return nil, err
		}
		return nil, newError(KindUnexpected, MsgCallbackFailed, err)
	}
	if !result.LeadFound {
		log.Warnf("[Payment] No lead found for orderId: %s", orderID)
	}

	s.afterReconcile(ctx, orderID, outcome, working)
	log.Infof("[Payment] Payment status updated: orderId %s is %s", orderID, status)
	return result, nil
}

func (s *Service) afterReconcile(ctx context.Context, orderID, outcome string, fields map[string]string) {
	if s.outcomes != nil {
		if err := s.outcomes.RecordOutcome(ctx, outcome); err != nil {
			log.Warnf("[Payment] Failed to count outcome %s for %s: %v", outcome, orderID, err)
		}
	}
	if s.archive != nil {
		if err := s.archive.ArchiveCallback(ctx, orderID, fields); err != nil {
			log.Warnf("[Payment] Failed to archive callback for %s: %v", orderID, err)
		}
	}
}

// presentField returns nil when the callback did not carry key.
func presentField(fields map[string]string, key string) *string {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	return &v
}

// IsNotFound reports whether err is a missing-payment error.
func IsNotFound(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Kind == KindNotFound
}
