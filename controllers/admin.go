package controllers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"citizen-services-api/config"
	"citizen-services-api/middleware"
	"citizen-services-api/models"
	"citizen-services-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AdminLoginRequest struct {
	AdminID  string `json:"admin_id"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates an admin by admin_id or email.
func AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing credentials"})
		return
	}
	if req.AdminID == "" && req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing credentials"})
		return
	}

	query := config.DB
	if req.AdminID != "" {
		query = query.Where("admin_id = ?", req.AdminID)
	} else {
		query = query.Where("email = ?", req.Email)
	}

	var admin models.Admin
	if err := query.First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := generateAdminToken(admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"admin": gin.H{
			"admin_id": admin.AdminID,
			"name":     admin.Name,
			"email":    admin.Email,
			"role":     admin.Role,
		},
	})
}

type AddAdminRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Role   string `json:"role" binding:"required"`
	Mobile string `json:"mobile"`
}

// AddAdmin creates an admin account with a generated one-time password.
func AddAdmin(c *gin.Context) {
	var req AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if !models.IsValidAdminRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}
	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	var count int64
	config.DB.Model(&models.Admin{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	adminID := utils.GenerateAdminID()
	for {
		var exists int64
		config.DB.Model(&models.Admin{}).Where("admin_id = ?", adminID).Count(&exists)
		if exists == 0 {
			break
		}
		adminID = utils.GenerateAdminID()
	}

	// One-time password, returned exactly once in the response
	password := fmt.Sprintf("Admin@%s_%s", req.Name, req.Role)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add admin"})
		return
	}

	admin := models.Admin{
		AdminID:   adminID,
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      req.Role,
		CreatedAt: time.Now(),
	}
	if req.Mobile != "" {
		admin.Mobile = &req.Mobile
	}

	if err := config.DB.Create(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add admin"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Admin added",
		"admin": gin.H{
			"admin_id": adminID,
			"name":     req.Name,
			"email":    req.Email,
			"role":     req.Role,
			"password": password,
		},
	})
}

// ResetAdminPassword sets a new password for the given admin.
func ResetAdminPassword(c *gin.Context) {
	adminID := c.Param("admin_id")

	var req struct {
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password is required"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var admin models.Admin
	if err := config.DB.Where("admin_id = ?", adminID).First(&admin).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	if err := config.DB.Model(&models.Admin{}).
		Where("admin_id = ?", adminID).
		Update("password", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset successfully",
	})
}

// GetAdminProfile returns the authenticated admin.
func GetAdminProfile(c *gin.Context) {
	adminID, _ := currentAdminID(c)

	var admin models.Admin
	if err := config.DB.Where("admin_id = ?", adminID).First(&admin).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"admin":   admin,
	})
}

func generateAdminToken(admin models.Admin) (string, error) {
	claims := middleware.AdminClaims{
		AdminID: admin.AdminID,
		Role:    admin.Role,
		Type:    middleware.TokenTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
