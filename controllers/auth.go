package controllers

import (
	"net/http"
	"os"
	"strconv"
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

type RegisterRequest struct {
	FullName           string `json:"full_name" binding:"required"`
	Mobile             string `json:"mobile"`
	Aadhaar            string `json:"aadhar"`
	Email              string `json:"email"`
	Password           string `json:"password" binding:"required"`
	LanguagePreference string `json:"language_preference"`
}

type LoginRequest struct {
	Mobile   string `json:"mobile"`
	Aadhaar  string `json:"aadhar"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user account. At least one of mobile, aadhar or email
// must be supplied; all supplied identifiers must be unique.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Required fields missing"})
		return
	}

	req.FullName = utils.SanitizeInput(req.FullName)
	if req.Mobile == "" && req.Aadhaar == "" && req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one of mobile, aadhar or email is required"})
		return
	}

	if req.Email != "" && !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}
	if req.Mobile != "" && !utils.ValidateMobile(req.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mobile number"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	// Duplicate checks per identifier
	if req.Email != "" {
		var count int64
		config.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
	}
	if req.Mobile != "" {
		var count int64
		config.DB.Model(&models.User{}).Where("mobile = ?", req.Mobile).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Mobile already exists"})
			return
		}
	}
	var aadhaarHash string
	if req.Aadhaar != "" {
		aadhaarHash = utils.HashAadhaar(req.Aadhaar)
		var count int64
		config.DB.Model(&models.User{}).Where("aadhar_hash = ?", aadhaarHash).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Aadhaar already exists"})
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	// Generate a unique user id; regenerate on the unlikely collision
	userID := utils.GenerateUserID()
	for {
		var count int64
		config.DB.Model(&models.User{}).Where("user_id = ?", userID).Count(&count)
		if count == 0 {
			break
		}
		userID = utils.GenerateUserID()
	}

	lang := req.LanguagePreference
	if lang == "" {
		lang = "en"
	}

	user := models.User{
		UserID:             userID,
		FullName:           req.FullName,
		Password:           string(hashed),
		LanguagePreference: lang,
		CreatedAt:          time.Now(),
	}
	if req.Mobile != "" {
		user.Mobile = &req.Mobile
	}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if aadhaarHash != "" {
		user.AadhaarHash = &aadhaarHash
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user_id": userID,
	})
}

// Login authenticates by mobile, aadhar or email plus password.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Credentials required"})
		return
	}

	if req.Mobile == "" && req.Aadhaar == "" && req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Credentials required"})
		return
	}

	query := config.DB
	switch {
	case req.Mobile != "":
		query = query.Where("mobile = ?", req.Mobile)
	case req.Aadhaar != "":
		query = query.Where("aadhar_hash = ?", utils.HashAadhaar(req.Aadhaar))
	default:
		query = query.Where("email = ?", req.Email)
	}

	var user models.User
	if err := query.First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := generateUserToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"user_id":             user.UserID,
			"full_name":           user.FullName,
			"email":               user.Email,
			"mobile":              user.Mobile,
			"language_preference": user.LanguagePreference,
		},
	})
}

func tokenExpiry() time.Duration {
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24
	}
	return time.Duration(expireHours) * time.Hour
}

func generateUserToken(user models.User) (string, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	claims := middleware.UserClaims{
		UserID: user.UserID,
		Email:  email,
		Type:   middleware.TokenTypeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
