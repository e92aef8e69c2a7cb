package services

import (
	"errors"
	"fmt"
	"time"

	"citizen-services-api/models"

	"gorm.io/gorm"
)

// RequestService is the request lifecycle engine. Every mutating operation
// runs inside a single transaction: the request row, the payment link and the
// history entry commit together or not at all.
type RequestService struct {
	db             *gorm.DB
	superAdminCode string
}

func NewRequestService(db *gorm.DB, superAdminCode string) *RequestService {
	return &RequestService{db: db, superAdminCode: superAdminCode}
}

type CreateRequestInput struct {
	UserID         string
	ServiceID      string
	RequestType    string
	Description    *string
	TransactionRef *string
}

// RequestDetails is the read-only aggregate returned by GetRequestWithHistory.
type RequestDetails struct {
	Request   models.Request                `json:"request"`
	History   []models.RequestStatusHistory `json:"status_history"`
	Documents []models.Document             `json:"documents"`
	Payments  []models.Payment              `json:"payments"`
}

// CreateRequest validates the service and the optional payment, then inserts
// the request, links the payment and appends the creation history entry
// atomically. The returned request has status Pending.
func (s *RequestService) CreateRequest(in CreateRequestInput) (*models.Request, error) {
	if !models.IsValidRequestType(in.RequestType) {
		return nil, ErrInvalidRequestType
	}

	var request models.Request

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.Where("service_id = ?", in.ServiceID).First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceNotFound
			}
			return err
		}

		if !service.IsActive {
			return ErrServiceInactive
		}

		if service.ServiceType == models.ServiceTypePayable && in.TransactionRef == nil {
			return ErrPaymentRequired
		}

		var payment *models.Payment
		if in.TransactionRef != nil {
			var p models.Payment
			if err := tx.Where("transaction_ref = ? AND user_id = ?", *in.TransactionRef, in.UserID).
				First(&p).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrPaymentNotFound
				}
				return err
			}
			if p.PaymentStatus != models.PaymentStatusSuccess {
				return ErrPaymentNotSuccessful
			}
			if p.ServiceID != in.ServiceID {
				return ErrPaymentServiceMismatch
			}
			if p.RequestID != nil {
				return ErrPaymentAlreadyLinked
			}
			payment = &p
		}

		now := time.Now()
		request = models.Request{
			UserID:      in.UserID,
			ServiceID:   in.ServiceID,
			RequestType: in.RequestType,
			Description: in.Description,
			Status:      models.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		if payment != nil {
			// Conditional link: the request_id IS NULL guard plus the unique
			// index on payments.request_id make sure a concurrent create with
			// the same transaction_ref cannot link the payment twice.
			res := tx.Model(&models.Payment{}).
				Where("payment_id = ? AND request_id IS NULL", payment.PaymentID).
				Update("request_id", request.RequestID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrPaymentAlreadyLinked
			}
		}

		remarks := "Request created"
		history := models.RequestStatusHistory{
			RequestID: request.RequestID,
			OldStatus: nil,
			NewStatus: models.StatusPending,
			Remarks:   &remarks,
			ChangedAt: now,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	return &request, nil
}

// TransitionStatus moves a request to a new status on behalf of an admin and
// appends the matching history entry. Any status may move to any other
// distinct status; no transition graph is enforced.
func (s *RequestService) TransitionStatus(requestID int, newStatus, adminID string, remarks *string) error {
	if !models.IsValidStatus(newStatus) {
		return ErrInvalidStatus
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var request models.Request
		if err := tx.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if request.Status == newStatus {
			return ErrNoOpTransition
		}

		now := time.Now()
		if err := tx.Model(&models.Request{}).
			Where("request_id = ?", requestID).
			Updates(map[string]interface{}{
				"status":     newStatus,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		oldStatus := request.Status
		history := models.RequestStatusHistory{
			RequestID: requestID,
			OldStatus: &oldStatus,
			NewStatus: newStatus,
			ChangedBy: &adminID,
			Remarks:   remarks,
			ChangedAt: now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		return recordStatusNotification(tx, request, newStatus, now)
	})
}

// CancelRequest lets the owning user cancel a request that is still Pending.
// A request owned by someone else reports the same not-found error as a
// missing one.
func (s *RequestService) CancelRequest(requestID int, userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var request models.Request
		if err := tx.Where("request_id = ? AND user_id = ?", requestID, userID).
			First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if request.Status != models.StatusPending {
			return ErrInvalidStatus
		}

		now := time.Now()
		if err := tx.Model(&models.Request{}).
			Where("request_id = ?", requestID).
			Updates(map[string]interface{}{
				"status":     models.StatusCancelled,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		oldStatus := request.Status
		remarks := "Cancelled by user"
		history := models.RequestStatusHistory{
			RequestID: requestID,
			OldStatus: &oldStatus,
			NewStatus: models.StatusCancelled,
			Remarks:   &remarks,
			ChangedAt: now,
		}
		return tx.Create(&history).Error
	})
}

// AssignRequest sets the handling admin after verifying the superadmin code.
// Assignment is out-of-band from status and does not touch the history.
func (s *RequestService) AssignRequest(requestID int, assignedTo, superAdminCode string) (*models.Admin, error) {
	if s.superAdminCode == "" || superAdminCode != s.superAdminCode {
		return nil, ErrForbidden
	}

	var admin models.Admin

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var request models.Request
		if err := tx.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if err := tx.Where("admin_id = ?", assignedTo).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdminNotFound
			}
			return err
		}

		return tx.Model(&models.Request{}).
			Where("request_id = ?", requestID).
			Update("assigned_to", assignedTo).Error
	})
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

// GetRequestWithHistory returns the request plus its history (oldest first),
// documents and payments. When userID is non-nil the lookup is scoped to that
// owner; a foreign request is indistinguishable from a missing one.
func (s *RequestService) GetRequestWithHistory(requestID int, userID *string) (*RequestDetails, error) {
	var details RequestDetails

	query := s.db.Preload("User").Preload("Service").Preload("Service.Department").
		Where("request_id = ?", requestID)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.First(&details.Request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if err := s.db.Where("request_id = ?", requestID).
		Order("changed_at ASC, history_id ASC").
		Find(&details.History).Error; err != nil {
		return nil, err
	}

	if err := s.db.Where("request_id = ?", requestID).
		Order("uploaded_at DESC").
		Find(&details.Documents).Error; err != nil {
		return nil, err
	}

	if err := s.db.Where("request_id = ?", requestID).
		Find(&details.Payments).Error; err != nil {
		return nil, err
	}

	return &details, nil
}

// recordStatusNotification writes the in-app notification row inside the
// transition transaction. Mail delivery happens after commit, see
// NotifyStatusChange.
func recordStatusNotification(tx *gorm.DB, request models.Request, newStatus string, now time.Time) error {
	requestID := request.RequestID
	notification := models.Notification{
		UserID:           request.UserID,
		Title:            "Request status updated",
		Message:          fmt.Sprintf("Your request #%d is now %s", requestID, newStatus),
		NotificationType: "status_update",
		RelatedRequestID: &requestID,
		Status:           models.NotificationUnread,
		SentTime:         now,
	}
	return tx.Create(&notification).Error
}
