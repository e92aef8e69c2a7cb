package models

import "time"

// Request statuses. These are the literal values stored in the requests table.
// Any status may move to any other status by an admin; only user-initiated
// cancellation is restricted (Pending only).
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusRejected   = "Rejected"
	StatusCancelled  = "Cancelled"
)

// Request kinds.
const (
	RequestTypeRequest   = "Request"
	RequestTypeComplaint = "Complaint"
)

type Request struct {
	RequestID   int       `gorm:"primaryKey;autoIncrement;column:request_id" json:"request_id"`
	UserID      string    `gorm:"column:user_id;index" json:"user_id"`
	ServiceID   string    `gorm:"column:service_id;index" json:"service_id"`
	RequestType string    `gorm:"column:request_type" json:"request_type"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	Status      string    `gorm:"column:status" json:"status"`
	AssignedTo  *string   `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Service Service `gorm:"foreignKey:ServiceID;references:ServiceID" json:"service,omitempty"`
}

func (Request) TableName() string {
	return "requests"
}

// RequestStatusHistory is the append-only audit trail of a request. Rows are
// written only by the lifecycle engine, one per committed status change; the
// creation entry has a null OldStatus.
type RequestStatusHistory struct {
	HistoryID int       `gorm:"primaryKey;autoIncrement;column:history_id" json:"history_id"`
	RequestID int       `gorm:"column:request_id;index" json:"request_id"`
	OldStatus *string   `gorm:"column:old_status" json:"old_status"`
	NewStatus string    `gorm:"column:new_status" json:"new_status"`
	ChangedBy *string   `gorm:"column:changed_by" json:"changed_by,omitempty"`
	Remarks   *string   `gorm:"column:remarks" json:"remarks,omitempty"`
	ChangedAt time.Time `gorm:"column:changed_at" json:"changed_at"`
}

func (RequestStatusHistory) TableName() string {
	return "request_status_history"
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func IsValidRequestType(requestType string) bool {
	return requestType == RequestTypeRequest || requestType == RequestTypeComplaint
}
