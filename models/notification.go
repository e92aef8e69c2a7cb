package models

import "time"

const (
	NotificationUnread = "Unread"
	NotificationRead   = "Read"
)

type Notification struct {
	NotificationID   int        `gorm:"primaryKey;autoIncrement;column:notification_id" json:"notification_id"`
	UserID           string     `gorm:"column:user_id;index" json:"user_id"`
	Title            string     `gorm:"column:title" json:"title"`
	Message          string     `gorm:"column:message" json:"message"`
	NotificationType string     `gorm:"column:notification_type" json:"notification_type"`
	RelatedRequestID *int       `gorm:"column:related_request_id" json:"related_request_id,omitempty"`
	Status           string     `gorm:"column:status;default:Unread" json:"status"`
	SentTime         time.Time  `gorm:"column:sent_time" json:"sent_time"`
	ReadAt           *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
