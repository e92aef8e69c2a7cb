package controllers

import (
	"net/http"
	"strconv"
	"time"

	"citizen-services-api/config"
	"citizen-services-api/models"
	"citizen-services-api/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ShowUserProfile returns the authenticated user's profile.
func ShowUserProfile(c *gin.Context) {
	userID, _ := currentUserID(c)

	var user models.User
	if err := config.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

type UpdateProfileRequest struct {
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	Mobile             string `json:"mobile"`
	LanguagePreference string `json:"language_preference"`
}

// UpdateUserProfile applies the supplied profile fields after validation.
func UpdateUserProfile(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updates := make(map[string]interface{})

	if req.FullName != "" {
		updates["full_name"] = utils.SanitizeInput(req.FullName)
	}

	if req.Email != "" {
		if !utils.ValidateEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}
		var count int64
		config.DB.Model(&models.User{}).
			Where("email = ? AND user_id != ?", req.Email, userID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
			return
		}
		updates["email"] = req.Email
	}

	if req.Mobile != "" {
		if !utils.ValidateMobile(req.Mobile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mobile number"})
			return
		}
		var count int64
		config.DB.Model(&models.User{}).
			Where("mobile = ? AND user_id != ?", req.Mobile, userID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Mobile number already in use"})
			return
		}
		updates["mobile"] = req.Mobile
	}

	if req.LanguagePreference != "" {
		updates["language_preference"] = req.LanguagePreference
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
	})
}

// ChangePassword verifies the current password and stores a new hash.
func ChangePassword(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both current and new password are required"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("password", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}

// ShowUserDocuments lists the user's uploaded documents, newest first.
func ShowUserDocuments(c *gin.Context) {
	userID, _ := currentUserID(c)

	var documents []models.Document
	if err := config.DB.Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(documents),
		"documents": documents,
	})
}

type UploadDocumentRequest struct {
	DocumentType   string `json:"document_type" binding:"required"`
	DocumentNumber string `json:"document_number"`
	FilePath       string `json:"file_path" binding:"required"`
	RequestID      *int   `json:"request_id"`
}

// UploadDocument records document metadata; file storage happens upstream.
func UploadDocument(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document type and file path are required"})
		return
	}

	document := models.Document{
		UserID:         userID,
		RequestID:      req.RequestID,
		DocumentType:   req.DocumentType,
		FilePath:       req.FilePath,
		VerifiedStatus: "Pending",
		UploadedAt:     time.Now(),
	}
	if req.DocumentNumber != "" {
		document.DocumentNumber = &req.DocumentNumber
	}

	if err := config.DB.Create(&document).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload document"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Document uploaded successfully",
		"document_id": document.DocumentID,
	})
}

// DeleteDocument removes one of the user's own documents.
func DeleteDocument(c *gin.Context) {
	userID, _ := currentUserID(c)

	documentID, err := strconv.Atoi(c.Param("document_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	var document models.Document
	if err := config.DB.Where("document_id = ? AND user_id = ?", documentID, userID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if err := config.DB.Delete(&document).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Document deleted successfully",
	})
}

// GetUserNotifications lists the latest 50 notifications.
func GetUserNotifications(c *gin.Context) {
	userID, _ := currentUserID(c)

	var notifications []models.Notification
	if err := config.DB.Where("user_id = ?", userID).
		Order("sent_time DESC").
		Limit(50).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"count":         len(notifications),
		"notifications": notifications,
	})
}

// MarkNotificationRead flags one of the user's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	userID, _ := currentUserID(c)

	notificationID, err := strconv.Atoi(c.Param("notification_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notification models.Notification
	if err := config.DB.Where("notification_id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&models.Notification{}).
		Where("notification_id = ?", notificationID).
		Updates(map[string]interface{}{
			"status":  models.NotificationRead,
			"read_at": now,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as read",
	})
}

// GetUserReceipts lists the user's payments joined with service, department
// and any linked request.
func GetUserReceipts(c *gin.Context) {
	userID, _ := currentUserID(c)
	paymentStatus := c.Query("payment_status")

	type Receipt struct {
		PaymentID      int        `json:"payment_id"`
		Amount         float64    `json:"amount"`
		TransactionRef string     `json:"transaction_ref"`
		PaymentMethod  *string    `json:"payment_method,omitempty"`
		PaymentStatus  string     `json:"payment_status"`
		PaidAt         *time.Time `json:"paid_at,omitempty"`
		ServiceName    string     `json:"service_name"`
		ServiceType    string     `json:"service_type"`
		DeptName       string     `json:"dept_name"`
		RequestID      *int       `json:"request_id,omitempty"`
		RequestStatus  *string    `json:"request_status,omitempty"`
	}

	query := config.DB.Table("payments AS p").
		Select(`p.payment_id, p.amount, p.transaction_ref, p.payment_method,
			p.payment_status, p.paid_at,
			sv.service_name, sv.service_type,
			d.dept_name,
			r.request_id, r.status AS request_status`).
		Joins("JOIN services sv ON p.service_id = sv.service_id").
		Joins("JOIN departments d ON sv.dept_id = d.dept_id").
		Joins("LEFT JOIN requests r ON p.request_id = r.request_id").
		Where("p.user_id = ?", userID)

	if paymentStatus != "" {
		query = query.Where("p.payment_status = ?", paymentStatus)
	}

	var receipts []Receipt
	if err := query.Order("p.paid_at DESC").Scan(&receipts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch receipts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(receipts),
		"receipts": receipts,
	})
}
