package controllers

import (
	"net/http"
	"time"

	"citizen-services-api/config"
	"citizen-services-api/models"
	"citizen-services-api/utils"

	"github.com/gin-gonic/gin"
)

// GetServicesByDepartment lists a department's services, optionally filtered
// by active flag.
func GetServicesByDepartment(c *gin.Context) {
	deptID := c.Param("dept_id")

	var count int64
	config.DB.Model(&models.Department{}).Where("dept_id = ?", deptID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	query := config.DB.Where("dept_id = ?", deptID)
	if isActive := c.Query("is_active"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}

	var services []models.Service
	if err := query.Order("service_name ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(services),
		"services": services,
	})
}

type AddServiceRequest struct {
	ServiceName        string   `json:"service_name" binding:"required"`
	ServiceType        string   `json:"service_type" binding:"required"`
	Description        string   `json:"description"`
	Fee                *float64 `json:"fee"`
	ProcessingTimeDays int      `json:"processing_time_days"`
}

// AddService creates a service under a department. Payable services must
// carry a positive fee.
func AddService(c *gin.Context) {
	deptID := c.Param("dept_id")

	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service name and service type are required"})
		return
	}

	if !models.IsValidServiceType(req.ServiceType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service type must be 'Payable' or 'Non-Payable'"})
		return
	}
	if req.ServiceType == models.ServiceTypePayable && (req.Fee == nil || *req.Fee <= 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid fee is required for payable services"})
		return
	}

	var count int64
	config.DB.Model(&models.Department{}).Where("dept_id = ?", deptID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	var existing int64
	config.DB.Model(&models.Service{}).
		Where("dept_id = ? AND service_name = ?", deptID, req.ServiceName).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Service already exists in this department"})
		return
	}

	serviceID := utils.GenerateServiceID(deptID)
	for {
		var exists int64
		config.DB.Model(&models.Service{}).Where("service_id = ?", serviceID).Count(&exists)
		if exists == 0 {
			break
		}
		serviceID = utils.GenerateServiceID(deptID)
	}

	fee := 0.0
	if req.ServiceType == models.ServiceTypePayable {
		fee = *req.Fee
	}
	processingDays := req.ProcessingTimeDays
	if processingDays == 0 {
		processingDays = 7
	}

	service := models.Service{
		ServiceID:          serviceID,
		DeptID:             deptID,
		ServiceName:        req.ServiceName,
		ServiceType:        req.ServiceType,
		Fee:                fee,
		ProcessingTimeDays: processingDays,
		IsActive:           true,
		CreatedAt:          time.Now(),
	}
	if req.Description != "" {
		service.Description = &req.Description
	}

	if err := config.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add service"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Service added successfully",
		"service_id": serviceID,
	})
}

type UpdateServiceRequest struct {
	ServiceName        string   `json:"service_name"`
	ServiceType        string   `json:"service_type"`
	Description        *string  `json:"description"`
	Fee                *float64 `json:"fee"`
	ProcessingTimeDays *int     `json:"processing_time_days"`
	IsActive           *bool    `json:"is_active"`
}

// UpdateService applies the supplied service fields.
func UpdateService(c *gin.Context) {
	deptID := c.Param("dept_id")
	serviceID := c.Param("service_id")

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var count int64
	config.DB.Model(&models.Service{}).
		Where("service_id = ? AND dept_id = ?", serviceID, deptID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found in this department"})
		return
	}

	updates := make(map[string]interface{})
	if req.ServiceName != "" {
		updates["service_name"] = req.ServiceName
	}
	if req.ServiceType != "" {
		if !models.IsValidServiceType(req.ServiceType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service type"})
			return
		}
		updates["service_type"] = req.ServiceType
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Fee != nil {
		updates["fee"] = *req.Fee
	}
	if req.ProcessingTimeDays != nil {
		updates["processing_time_days"] = *req.ProcessingTimeDays
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := config.DB.Model(&models.Service{}).
		Where("service_id = ?", serviceID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service updated successfully",
	})
}

// RemoveService deletes a service that has no requests or payments; otherwise
// it should be deactivated instead.
func RemoveService(c *gin.Context) {
	deptID := c.Param("dept_id")
	serviceID := c.Param("service_id")

	var count int64
	config.DB.Model(&models.Service{}).
		Where("service_id = ? AND dept_id = ?", serviceID, deptID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found in this department"})
		return
	}

	var requests int64
	config.DB.Model(&models.Request{}).Where("service_id = ?", serviceID).Count(&requests)
	if requests > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot delete service with existing requests. Deactivate instead.",
		})
		return
	}

	var payments int64
	config.DB.Model(&models.Payment{}).Where("service_id = ?", serviceID).Count(&payments)
	if payments > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot delete service with existing payments. Deactivate instead.",
		})
		return
	}

	if err := config.DB.Where("service_id = ?", serviceID).
		Delete(&models.Service{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service deleted successfully",
	})
}

// ToggleServiceStatus flips the active flag. Inactive services reject new
// requests but existing ones keep their lifecycle.
func ToggleServiceStatus(c *gin.Context) {
	deptID := c.Param("dept_id")
	serviceID := c.Param("service_id")

	var service models.Service
	if err := config.DB.Where("service_id = ? AND dept_id = ?", serviceID, deptID).
		First(&service).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found in this department"})
		return
	}

	newStatus := !service.IsActive
	if err := config.DB.Model(&models.Service{}).
		Where("service_id = ?", serviceID).
		Update("is_active", newStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle service"})
		return
	}

	message := "Service deactivated successfully"
	if newStatus {
		message = "Service activated successfully"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   message,
		"is_active": newStatus,
	})
}

// GetServiceStats returns request counts and revenue for one service.
func GetServiceStats(c *gin.Context) {
	stats, err := newReportService().ServiceStats(c.Param("dept_id"), c.Param("service_id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
