package models

import "time"

// Lead is owned by the lead-management side of the application. The payment
// flow only ever touches PaymentStatus of the row sharing its order id.
type Lead struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       string    `gorm:"type:varchar(64);index" json:"orderId"`
	PaymentStatus string    `gorm:"type:varchar(64);default:''" json:"paymentStatus"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Lead) TableName() string {
	return "leads"
}
