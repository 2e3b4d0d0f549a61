package repository

import (
	"github.com/ManuelReschke/LeadPay/app/models"
	"gorm.io/gorm"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create stores a new comment; assign and created_date get their defaults in the model hook
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByDocumentID returns all comments of a document, newest first
func (r *commentRepository) GetByDocumentID(documentID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("document_id = ?", documentID).
		Order("created_date DESC").Find(&comments).Error
	return comments, err
}

// CountByDocumentID returns the number of comments on a document
func (r *commentRepository) CountByDocumentID(documentID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("document_id = ?", documentID).Count(&count).Error
	return count, err
}
