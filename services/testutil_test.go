package services

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"citizen-services-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Department{},
		&models.Service{},
		&models.Request{},
		&models.RequestStatusHistory{},
		&models.Payment{},
		&models.Document{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

// newTestDB opens a private in-memory database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	return openTestDB(t, fmt.Sprintf("file:testdb%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBCounter, 1)))
}

// newFileTestDB opens a file-backed database so transactions from separate
// connections contend the way they do in production. Immediate transactions
// plus a busy timeout make a concurrent writer wait instead of failing.
func newFileTestDB(t *testing.T) *gorm.DB {
	path := filepath.Join(t.TempDir(), "engine.db")
	return openTestDB(t, fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=5000", path))
}

func seedUser(t *testing.T, db *gorm.DB, userID string) models.User {
	t.Helper()
	email := userID + "@example.com"
	user := models.User{
		UserID:             userID,
		FullName:           "Test User " + userID,
		Email:              &email,
		Password:           "not-a-real-hash",
		LanguagePreference: "en",
		CreatedAt:          time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", userID, err)
	}
	return user
}

func seedAdmin(t *testing.T, db *gorm.DB, adminID string) models.Admin {
	t.Helper()
	admin := models.Admin{
		AdminID:   adminID,
		Name:      "Test Admin " + adminID,
		Email:     adminID + "@gov.example.com",
		Password:  "not-a-real-hash",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin %s: %v", adminID, err)
	}
	return admin
}

func seedDepartment(t *testing.T, db *gorm.DB, deptID, name string) models.Department {
	t.Helper()
	dept := models.Department{
		DeptID:    deptID,
		DeptName:  name,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&dept).Error; err != nil {
		t.Fatalf("failed to seed department %s: %v", deptID, err)
	}
	return dept
}

func seedService(t *testing.T, db *gorm.DB, serviceID, deptID, serviceType string, fee float64, active bool) models.Service {
	t.Helper()
	service := models.Service{
		ServiceID:          serviceID,
		DeptID:             deptID,
		ServiceName:        "Test Service " + serviceID,
		ServiceType:        serviceType,
		Fee:                fee,
		ProcessingTimeDays: 7,
		IsActive:           active,
		CreatedAt:          time.Now(),
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("failed to seed service %s: %v", serviceID, err)
	}
	if !active {
		// GORM substitutes the default:true for a zero-valued IsActive on
		// Create, so an inactive service needs a follow-up column update.
		if err := db.Model(&models.Service{}).Where("service_id = ?", serviceID).
			Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate seeded service %s: %v", serviceID, err)
		}
	}
	return service
}

func seedPayment(t *testing.T, db *gorm.DB, userID, serviceID, transactionRef, status string, amount float64) models.Payment {
	t.Helper()
	now := time.Now()
	payment := models.Payment{
		UserID:         userID,
		ServiceID:      serviceID,
		Amount:         amount,
		TransactionRef: transactionRef,
		PaymentStatus:  status,
		PaidAt:         &now,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("failed to seed payment %s: %v", transactionRef, err)
	}
	return payment
}

func historyFor(t *testing.T, db *gorm.DB, requestID int) []models.RequestStatusHistory {
	t.Helper()
	var history []models.RequestStatusHistory
	if err := db.Where("request_id = ?", requestID).
		Order("changed_at ASC, history_id ASC").
		Find(&history).Error; err != nil {
		t.Fatalf("failed to load history for request %d: %v", requestID, err)
	}
	return history
}
