package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"citizen-services-api/config"
	"citizen-services-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open("file:authtest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Admin{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM admins")
	config.DB = db
}

func signUserToken(t *testing.T, userID, tokenType string, expiry time.Duration) string {
	t.Helper()
	claims := UserClaims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func userRouter() *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthUser(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID")})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthUserValidToken(t *testing.T) {
	setupAuthTest(t)
	config.DB.Create(&models.User{
		UserID:   "UID00000001",
		FullName: "Test User",
		Password: "x",
	})

	token := signUserToken(t, "UID00000001", TokenTypeUser, time.Hour)
	if w := doRequest(userRouter(), token); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestAuthUserMissingHeader(t *testing.T) {
	setupAuthTest(t)
	if w := doRequest(userRouter(), ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthUserExpiredToken(t *testing.T) {
	setupAuthTest(t)
	token := signUserToken(t, "UID00000001", TokenTypeUser, -time.Hour)
	if w := doRequest(userRouter(), token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthUserDeletedUser(t *testing.T) {
	setupAuthTest(t)
	// Token is valid but the account no longer exists.
	token := signUserToken(t, "UID00000001", TokenTypeUser, time.Hour)
	if w := doRequest(userRouter(), token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthAdminRejectsUserToken(t *testing.T) {
	setupAuthTest(t)
	config.DB.Create(&models.User{
		UserID:   "UID00000001",
		FullName: "Test User",
		Password: "x",
	})

	router := gin.New()
	router.GET("/protected", AuthAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	token := signUserToken(t, "UID00000001", TokenTypeUser, time.Hour)
	w := doRequest(router, token)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuthAdminValidToken(t *testing.T) {
	setupAuthTest(t)
	config.DB.Create(&models.Admin{
		AdminID:  "A00000001",
		Name:     "Test Admin",
		Email:    "admin@gov.example.com",
		Password: "x",
		Role:     models.RoleAdmin,
	})

	claims := AdminClaims{
		AdminID: "A00000001",
		Role:    models.RoleAdmin,
		Type:    TokenTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	router := gin.New()
	router.GET("/protected", AuthAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("adminRole")})
	})

	if w := doRequest(router, token); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}
