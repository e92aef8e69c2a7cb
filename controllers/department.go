package controllers

import (
	"net/http"
	"time"

	"citizen-services-api/config"
	"citizen-services-api/models"
	"citizen-services-api/utils"

	"github.com/gin-gonic/gin"
)

// GetAllDepartments lists every department, alphabetically.
func GetAllDepartments(c *gin.Context) {
	var departments []models.Department
	if err := config.DB.Order("dept_name ASC").Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"count":       len(departments),
		"departments": departments,
	})
}

// GetDepartmentByID returns one department.
func GetDepartmentByID(c *gin.Context) {
	deptID := c.Param("dept_id")

	var department models.Department
	if err := config.DB.Where("dept_id = ?", deptID).First(&department).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"department": department,
	})
}

// GetDepartmentServices lists a department's active services.
func GetDepartmentServices(c *gin.Context) {
	deptID := c.Param("dept_id")

	var count int64
	config.DB.Model(&models.Department{}).Where("dept_id = ?", deptID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	var services []models.Service
	if err := config.DB.Where("dept_id = ? AND is_active = ?", deptID, true).
		Order("service_name ASC").
		Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(services),
		"services": services,
	})
}

type DepartmentRequest struct {
	DeptName       string `json:"dept_name"`
	OfficeLocation string `json:"office_location"`
	ContactEmail   string `json:"contact_email"`
	ContactPhone   string `json:"contact_phone"`
}

// CreateDepartment adds a department with a generated id.
func CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DeptName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Department name is required"})
		return
	}

	var count int64
	config.DB.Model(&models.Department{}).Where("dept_name = ?", req.DeptName).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Department already exists"})
		return
	}

	department := models.Department{
		DeptID:    utils.GenerateDepartmentID(),
		DeptName:  req.DeptName,
		CreatedAt: time.Now(),
	}
	if req.OfficeLocation != "" {
		department.OfficeLocation = &req.OfficeLocation
	}
	if req.ContactEmail != "" {
		department.ContactEmail = &req.ContactEmail
	}
	if req.ContactPhone != "" {
		department.ContactPhone = &req.ContactPhone
	}

	if err := config.DB.Create(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Department created successfully",
		"dept_id": department.DeptID,
	})
}

// UpdateDepartment applies the supplied department fields.
func UpdateDepartment(c *gin.Context) {
	deptID := c.Param("dept_id")

	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var count int64
	config.DB.Model(&models.Department{}).Where("dept_id = ?", deptID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	updates := make(map[string]interface{})
	if req.DeptName != "" {
		updates["dept_name"] = req.DeptName
	}
	if req.OfficeLocation != "" {
		updates["office_location"] = req.OfficeLocation
	}
	if req.ContactEmail != "" {
		updates["contact_email"] = req.ContactEmail
	}
	if req.ContactPhone != "" {
		updates["contact_phone"] = req.ContactPhone
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := config.DB.Model(&models.Department{}).
		Where("dept_id = ?", deptID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Department updated",
	})
}

// DeleteDepartment removes a department that has no services left.
func DeleteDepartment(c *gin.Context) {
	deptID := c.Param("dept_id")

	var count int64
	config.DB.Model(&models.Department{}).Where("dept_id = ?", deptID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	var services int64
	config.DB.Model(&models.Service{}).Where("dept_id = ?", deptID).Count(&services)
	if services > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot delete department with existing services. Delete services first.",
		})
		return
	}

	if err := config.DB.Where("dept_id = ?", deptID).
		Delete(&models.Department{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Department deleted",
	})
}

// GetDepartmentStats returns request counts for one department.
func GetDepartmentStats(c *gin.Context) {
	stats, err := newReportService().DepartmentStats(c.Param("dept_id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
