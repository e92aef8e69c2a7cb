package models

import "time"

type User struct {
	UserID             string    `gorm:"primaryKey;column:user_id" json:"user_id"`
	FullName           string    `gorm:"column:full_name" json:"full_name"`
	Mobile             *string   `gorm:"column:mobile;unique" json:"mobile,omitempty"`
	Email              *string   `gorm:"column:email;unique" json:"email,omitempty"`
	Password           string    `gorm:"column:password" json:"-"`
	AadhaarHash        *string   `gorm:"column:aadhar_hash;unique" json:"-"`
	LanguagePreference string    `gorm:"column:language_preference;default:en" json:"language_preference"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
