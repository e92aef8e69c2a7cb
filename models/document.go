package models

import "time"

type Document struct {
	DocumentID     int       `gorm:"primaryKey;autoIncrement;column:document_id" json:"document_id"`
	UserID         string    `gorm:"column:user_id;index" json:"user_id"`
	RequestID      *int      `gorm:"column:request_id;index" json:"request_id,omitempty"`
	DocumentType   string    `gorm:"column:document_type" json:"document_type"`
	DocumentNumber *string   `gorm:"column:document_number" json:"document_number,omitempty"`
	FilePath       string    `gorm:"column:file_path" json:"file_path"`
	VerifiedStatus string    `gorm:"column:verified_status;default:Pending" json:"verified_status"`
	UploadedAt     time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

func (Document) TableName() string {
	return "documents"
}
