package services

import (
	"errors"
	"fmt"

	"citizen-services-api/config"
	"citizen-services-api/models"

	"gorm.io/gorm"
)

// NotificationService delivers status-change mail. The in-app notification
// row is written inside the transition transaction; mail is sent afterwards,
// best-effort, and never affects the transaction outcome.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// SendStatusChangeMail mails the request owner about a committed transition.
// Users without an email address are skipped silently.
func (s *NotificationService) SendStatusChangeMail(requestID int, newStatus string) error {
	var request models.Request
	if err := s.db.Preload("User").Preload("Service").
		Where("request_id = ?", requestID).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	if request.User.Email == nil {
		return nil
	}

	subject := fmt.Sprintf("Request #%d status update", request.RequestID)
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your request <b>#%d</b> for <b>%s</b> is now <b>%s</b>.</p>",
		request.User.FullName, request.RequestID, request.Service.ServiceName, newStatus,
	)

	return config.SendMail([]string{*request.User.Email}, subject, body)
}
