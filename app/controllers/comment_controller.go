package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/LeadPay/app/models"
	"github.com/ManuelReschke/LeadPay/app/repository"
)

// CommentController handles comments attached to a lead document
type CommentController struct {
	commentRepo repository.CommentRepository
}

// NewCommentController creates a new comment controller with repository
func NewCommentController(commentRepo repository.CommentRepository) *CommentController {
	return &CommentController{
		commentRepo: commentRepo,
	}
}

type createCommentRequest struct {
	DocumentID string `json:"document_id" form:"document_id"`
	Comment    string `json:"comment" form:"comment"`
	Assign     string `json:"assign" form:"assign"`
}

// HandleCreate stores a new comment and returns it rendered
func (cc *CommentController) HandleCreate(c *fiber.Ctx) error {
	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid comment request.",
		})
	}

	comment := &models.Comment{
		DocumentID: strings.TrimSpace(req.DocumentID),
		Comment:    strings.TrimSpace(req.Comment),
		Assign:     strings.TrimSpace(req.Assign),
	}
	if err := comment.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Document ID and comment are required.",
			"error":   err.Error(),
		})
	}

	if err := cc.commentRepo.Create(comment); err != nil {
		log.Errorf("[CommentController] Failed to store comment for %s: %v", comment.DocumentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Comment could not be saved.",
		})
	}

	// Reload to return the row as stored, including database defaults.
	stored, err := cc.commentRepo.GetByID(comment.ID)
	if err != nil {
		log.Warnf("[CommentController] Reloading comment %d failed: %v", comment.ID, err)
		stored = comment
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": stored,
	})
}

// HandleList returns all comments of a document, newest first
func (cc *CommentController) HandleList(c *fiber.Ctx) error {
	documentID := c.Params("documentId")
	comments, err := cc.commentRepo.GetByDocumentID(documentID)
	if err != nil {
		log.Errorf("[CommentController] Failed to load comments for %s: %v", documentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Comments could not be loaded.",
		})
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	total, err := cc.commentRepo.CountByDocumentID(documentID)
	if err != nil {
		log.Warnf("[CommentController] Counting comments for %s failed: %v", documentID, err)
		total = int64(len(comments))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"comments": comments,
		"total":    total,
	})
}
