package repository

import (
	"github.com/ManuelReschke/LeadPay/app/models"
	"gorm.io/gorm"
)

// PaymentRepository defines read access to stored payments
type PaymentRepository interface {
	GetByOrderID(orderID string) (*models.Payment, error)
	List(offset, limit int) ([]models.Payment, error)
	ListByCustomerID(customerID string, offset, limit int) ([]models.Payment, error)
	Count() (int64, error)
}

// LeadRepository defines read access to leads referenced by payments
type LeadRepository interface {
	GetByOrderID(orderID string) (*models.Lead, error)
}

// CommentRepository defines the interface for comment-related database operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	GetByDocumentID(documentID string) ([]models.Comment, error)
	CountByDocumentID(documentID string) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Payment PaymentRepository
	Lead    LeadRepository
	Comment CommentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Payment: NewPaymentRepository(db),
		Lead:    NewLeadRepository(db),
		Comment: NewCommentRepository(db),
	}
}
