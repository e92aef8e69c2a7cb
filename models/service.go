package models

import "time"

// Service types. A Payable service must carry a fee > 0 and requires a
// successful payment before a request against it can be created.
const (
	ServiceTypePayable    = "Payable"
	ServiceTypeNonPayable = "Non-Payable"
)

type Service struct {
	ServiceID          string    `gorm:"primaryKey;column:service_id" json:"service_id"`
	DeptID             string    `gorm:"column:dept_id;index" json:"dept_id"`
	ServiceName        string    `gorm:"column:service_name" json:"service_name"`
	ServiceType        string    `gorm:"column:service_type" json:"service_type"`
	Description        *string   `gorm:"column:description" json:"description,omitempty"`
	Fee                float64   `gorm:"column:fee" json:"fee"`
	ProcessingTimeDays int       `gorm:"column:processing_time_days;default:7" json:"processing_time_days"`
	IsActive           bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`

	Department Department `gorm:"foreignKey:DeptID;references:DeptID" json:"department,omitempty"`
}

func (Service) TableName() string {
	return "services"
}

func IsValidServiceType(serviceType string) bool {
	return serviceType == ServiceTypePayable || serviceType == ServiceTypeNonPayable
}
