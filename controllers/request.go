package controllers

import (
	"log"
	"net/http"
	"strconv"

	"citizen-services-api/config"
	"citizen-services-api/services"

	"github.com/gin-gonic/gin"
)

type MakeRequestRequest struct {
	ServiceID      string  `json:"service_id" binding:"required"`
	RequestType    string  `json:"request_type" binding:"required"`
	Description    *string `json:"description"`
	TransactionRef *string `json:"transaction_ref"`
}

// MakeRequest submits a request or complaint for the authenticated user.
func MakeRequest(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req MakeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service ID and request type are required"})
		return
	}

	request, err := newRequestService().CreateRequest(services.CreateRequestInput{
		UserID:         userID,
		ServiceID:      req.ServiceID,
		RequestType:    req.RequestType,
		Description:    req.Description,
		TransactionRef: req.TransactionRef,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Request submitted successfully",
		"request_id": request.RequestID,
		"status":     request.Status,
	})
}

// GetMyRequests lists the authenticated user's requests, newest first.
func GetMyRequests(c *gin.Context) {
	userID, _ := currentUserID(c)

	filter := services.RequestFilter{
		Status:      c.Query("status"),
		RequestType: c.Query("request_type"),
	}

	rows, err := newReportService().ListUserRequests(userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(rows),
		"requests": rows,
	})
}

// CheckRequestStatus returns one of the user's own requests with its full
// status history, documents and payments.
func CheckRequestStatus(c *gin.Context) {
	userID, _ := currentUserID(c)

	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	details, err := newRequestService().GetRequestWithHistory(requestID, &userID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"request": details,
	})
}

// CancelRequest cancels one of the user's own pending requests.
func CancelRequest(c *gin.Context) {
	userID, _ := currentUserID(c)

	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := newRequestService().CancelRequest(requestID, userID); err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request cancelled successfully",
	})
}

// GetAllRequests returns the admin listing, grouped by department.
func GetAllRequests(c *gin.Context) {
	filter := services.RequestFilter{
		Status:      c.Query("status"),
		RequestType: c.Query("request_type"),
		DeptID:      c.Query("dept_id"),
	}

	rows, err := newReportService().ListAllRequests(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"count":       len(rows),
		"departments": services.GroupByDepartment(rows),
	})
}

type UpdateStatusRequest struct {
	Status  string  `json:"status" binding:"required"`
	Remarks *string `json:"remarks"`
}

// UpdateRequestStatus transitions a request on behalf of the authenticated
// admin. Mail delivery is best-effort after the transition commits.
func UpdateRequestStatus(c *gin.Context) {
	adminID, _ := currentAdminID(c)

	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	if err := newRequestService().TransitionStatus(requestID, req.Status, adminID, req.Remarks); err != nil {
		respondEngineError(c, err)
		return
	}

	if err := services.NewNotificationService(config.DB).
		SendStatusChangeMail(requestID, req.Status); err != nil {
		log.Printf("status mail for request %d failed: %v", requestID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request status updated",
		"status":  req.Status,
	})
}

type AssignRequestRequest struct {
	AssignedTo     string `json:"assigned_to" binding:"required"`
	SuperAdminCode string `json:"superadmin_code" binding:"required"`
}

// AssignRequest sets the handling admin. Requires the superadmin code.
func AssignRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var req AssignRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assigned admin and superadmin code are required"})
		return
	}

	admin, err := newRequestService().AssignRequest(requestID, req.AssignedTo, req.SuperAdminCode)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request assigned successfully",
		"assigned_to": gin.H{
			"admin_id": admin.AdminID,
			"name":     admin.Name,
		},
	})
}

// GetRequestDetails returns any request with its full history, for admins.
func GetRequestDetails(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	details, err := newRequestService().GetRequestWithHistory(requestID, nil)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"request": details,
	})
}
