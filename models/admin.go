package models

import "time"

// Admin roles accepted by AddAdmin.
const (
	RoleAdmin           = "admin"
	RoleSuperAdmin      = "super_admin"
	RoleDepartmentAdmin = "department_admin"
)

type Admin struct {
	AdminID   string    `gorm:"primaryKey;column:admin_id" json:"admin_id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email;unique" json:"email"`
	Mobile    *string   `gorm:"column:mobile" json:"mobile,omitempty"`
	Password  string    `gorm:"column:password" json:"-"`
	Role      string    `gorm:"column:role" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Admin) TableName() string {
	return "admins"
}

func IsValidAdminRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSuperAdmin, RoleDepartmentAdmin:
		return true
	}
	return false
}
