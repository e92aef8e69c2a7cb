package models

import "time"

type Department struct {
	DeptID         string    `gorm:"primaryKey;column:dept_id" json:"dept_id"`
	DeptName       string    `gorm:"column:dept_name;unique" json:"dept_name"`
	OfficeLocation *string   `gorm:"column:office_location" json:"office_location,omitempty"`
	ContactEmail   *string   `gorm:"column:contact_email" json:"contact_email,omitempty"`
	ContactPhone   *string   `gorm:"column:contact_phone" json:"contact_phone,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Department) TableName() string {
	return "departments"
}
