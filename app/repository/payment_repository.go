package repository

import (
	"github.com/ManuelReschke/LeadPay/app/models"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// List returns payments newest first
func (r *paymentRepository) List(offset, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByCustomerID(customerID string, offset, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).Count(&count).Error
	return count, err
}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository instance
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) GetByOrderID(orderID string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.Where("order_id = ?", orderID).First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}
