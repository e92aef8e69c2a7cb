package models

import "time"

// Payment statuses as recorded by the payment ledger.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusSuccess = "Success"
	PaymentStatusFailed  = "Failed"
)

// Payment is one payment attempt. RequestID carries a unique index so the
// store itself enforces the one-to-one payment/request relation; NULL rows
// (unlinked payments) are exempt from the constraint.
type Payment struct {
	PaymentID      int        `gorm:"primaryKey;autoIncrement;column:payment_id" json:"payment_id"`
	UserID         string     `gorm:"column:user_id;index" json:"user_id"`
	ServiceID      string     `gorm:"column:service_id;index" json:"service_id"`
	Amount         float64    `gorm:"column:amount" json:"amount"`
	TransactionRef string     `gorm:"column:transaction_ref;index" json:"transaction_ref"`
	PaymentMethod  *string    `gorm:"column:payment_method" json:"payment_method,omitempty"`
	PaymentStatus  string     `gorm:"column:payment_status" json:"payment_status"`
	RequestID      *int       `gorm:"column:request_id;uniqueIndex" json:"request_id,omitempty"`
	PaidAt         *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
