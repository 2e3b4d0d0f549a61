package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"gorm.io/gorm"
)

const DefaultCommentAssignee = "lead admin"

// Display settings for comment timestamps (en-IN, 12h clock).
const (
	commentDisplayShift  = 5*time.Hour + 30*time.Minute
	commentDisplayLayout = "02/01/2006, 03:04:05 pm"
)

var commentDisplayZone = loadCommentDisplayZone()

type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DocumentID  string    `gorm:"type:varchar(191);not null;index" json:"document_id" validate:"required,max=191"`
	Comment     string    `gorm:"type:text;not null" json:"comment" validate:"required,min=1"`
	Assign      string    `gorm:"type:varchar(100);not null;default:'lead admin'" json:"assign" validate:"max=100"`
	CreatedDate time.Time `gorm:"autoCreateTime" json:"created_date"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) Validate() error {
	v := validator.New()
	return v.Struct(c)
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(c.Assign) == "" {
		c.Assign = DefaultCommentAssignee
	}
	if c.CreatedDate.IsZero() {
		c.CreatedDate = time.Now()
	}
	return nil
}

// MarshalJSON renders created_date for display. The stored value is untouched.
func (c Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          uint   `json:"id"`
		DocumentID  string `json:"document_id"`
		Comment     string `json:"comment"`
		Assign      string `json:"assign"`
		CreatedDate string `json:"created_date"`
	}{
		ID:          c.ID,
		DocumentID:  c.DocumentID,
		Comment:     c.Comment,
		Assign:      c.Assign,
		CreatedDate: FormatCommentDate(c.CreatedDate),
	})
}

// FormatCommentDate shifts t by +5:30 and formats it in India Standard Time.
// The shift is applied on top of the zone conversion; existing clients rely on it.
func FormatCommentDate(t time.Time) string {
	return t.UTC().Add(commentDisplayShift).In(commentDisplayZone).Format(commentDisplayLayout)
}

func loadCommentDisplayZone() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", int(commentDisplayShift/time.Second))
	}
	return loc
}
