package payment

import (
	"context"
	"errors"

	"github.com/ManuelReschke/LeadPay/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides the DB operations used by the payment service.
type Repository interface {
	CreatePayment(ctx context.Context, p *models.Payment) error
	// FindPaymentForUpdate loads and locks the payment matching orderID.
	// A missing payment yields (nil, nil).
	FindPaymentForUpdate(ctx context.Context, orderID string) (*models.Payment, error)
	// ApplyCallback writes update to the stored row of p and mirrors it onto p.
	ApplyCallback(ctx context.Context, p *models.Payment, update models.PaymentCallbackUpdate) error
	// UpdateLeadPaymentStatus reports whether a lead matched orderID.
	UpdateLeadPaymentStatus(ctx context.Context, orderID, status string) (bool, error)
	// Transaction runs fn against a repository bound to one DB transaction.
	Transaction(ctx context.Context, fn func(repo Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payment repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormRepository) FindPaymentForUpdate(ctx context.Context, orderID string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) ApplyCallback(ctx context.Context, p *models.Payment, update models.PaymentCallbackUpdate) error {
	if err := r.db.WithContext(ctx).Model(p).Updates(update.Columns()).Error; err != nil {
		return err
	}
	update.Apply(p)
	return nil
}

func (r *gormRepository) UpdateLeadPaymentStatus(ctx context.Context, orderID, status string) (bool, error) {
	var lead models.Lead
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		First(&lead).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, r.db.WithContext(ctx).Model(&lead).Update("payment_status", status).Error
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
