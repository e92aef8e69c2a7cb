package services

import (
	"errors"
	"time"

	"citizen-services-api/models"

	"gorm.io/gorm"
)

// ReportService builds the read-only aggregated views: filtered listings,
// department grouping and per-department/per-service statistics. It never
// writes.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// RequestFilter narrows a listing. Zero-value fields are ignored; predicates
// are composed through the query builder, never concatenated into SQL.
type RequestFilter struct {
	Status      string
	RequestType string
	DeptID      string
}

func (f RequestFilter) apply(query *gorm.DB) *gorm.DB {
	if f.Status != "" {
		query = query.Where("r.status = ?", f.Status)
	}
	if f.RequestType != "" {
		query = query.Where("r.request_type = ?", f.RequestType)
	}
	if f.DeptID != "" {
		query = query.Where("d.dept_id = ?", f.DeptID)
	}
	return query
}

// RequestSummary is one row of a request listing, joined with its user,
// service and department.
type RequestSummary struct {
	RequestID      int       `json:"request_id"`
	RequestType    string    `json:"request_type"`
	Description    *string   `json:"description,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UserID         string    `json:"user_id"`
	FullName       string    `json:"full_name"`
	Email          *string   `json:"email,omitempty"`
	Mobile         *string   `json:"mobile,omitempty"`
	ServiceID      string    `json:"service_id"`
	ServiceName    string    `json:"service_name"`
	ServiceType    string    `json:"service_type"`
	DeptID         string    `json:"dept_id"`
	DeptName       string    `json:"dept_name"`
	AssignedToName *string   `json:"assigned_to_name,omitempty"`
}

// DepartmentGroup is a listing partition for the admin view.
type DepartmentGroup struct {
	DeptID   string           `json:"dept_id"`
	DeptName string           `json:"dept_name"`
	Requests []RequestSummary `json:"requests"`
}

func (s *ReportService) baseListing() *gorm.DB {
	return s.db.Table("requests AS r").
		Select(`r.request_id, r.request_type, r.description, r.status, r.created_at,
			u.user_id, u.full_name, u.email, u.mobile,
			sv.service_id, sv.service_name, sv.service_type,
			d.dept_id, d.dept_name,
			a.name AS assigned_to_name`).
		Joins("JOIN users u ON r.user_id = u.user_id").
		Joins("JOIN services sv ON r.service_id = sv.service_id").
		Joins("JOIN departments d ON sv.dept_id = d.dept_id").
		Joins("LEFT JOIN admins a ON r.assigned_to = a.admin_id")
}

// ListAllRequests returns the admin view across departments, sorted by
// department name then newest first within each department.
func (s *ReportService) ListAllRequests(filter RequestFilter) ([]RequestSummary, error) {
	var rows []RequestSummary
	query := filter.apply(s.baseListing()).
		Order("d.dept_name ASC, r.created_at DESC, r.request_id DESC")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListUserRequests returns one user's requests, newest first.
func (s *ReportService) ListUserRequests(userID string, filter RequestFilter) ([]RequestSummary, error) {
	var rows []RequestSummary
	query := filter.apply(s.baseListing()).
		Where("r.user_id = ?", userID).
		Order("r.created_at DESC, r.request_id DESC")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GroupByDepartment partitions a listing by department, keeping each group's
// internal ordering. Groups appear in the order their department was first
// encountered in the input.
func GroupByDepartment(rows []RequestSummary) []DepartmentGroup {
	index := make(map[string]int, len(rows))
	groups := make([]DepartmentGroup, 0)

	for _, row := range rows {
		i, ok := index[row.DeptID]
		if !ok {
			i = len(groups)
			index[row.DeptID] = i
			groups = append(groups, DepartmentGroup{
				DeptID:   row.DeptID,
				DeptName: row.DeptName,
			})
		}
		groups[i].Requests = append(groups[i].Requests, row)
	}

	return groups
}

type DepartmentStats struct {
	DeptID            string `json:"dept_id"`
	DeptName          string `json:"dept_name"`
	TotalServices     int64  `json:"total_services"`
	TotalRequests     int64  `json:"total_requests"`
	PendingRequests   int64  `json:"pending_requests"`
	CompletedRequests int64  `json:"completed_requests"`
}

// DepartmentStats aggregates request counts for one department.
func (s *ReportService) DepartmentStats(deptID string) (*DepartmentStats, error) {
	var dept models.Department
	if err := s.db.Where("dept_id = ?", deptID).First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	stats := &DepartmentStats{DeptID: dept.DeptID, DeptName: dept.DeptName}

	if err := s.db.Model(&models.Service{}).
		Where("dept_id = ?", deptID).
		Count(&stats.TotalServices).Error; err != nil {
		return nil, err
	}

	deptRequests := func() *gorm.DB {
		return s.db.Table("requests AS r").
			Joins("JOIN services sv ON r.service_id = sv.service_id").
			Where("sv.dept_id = ?", deptID)
	}

	if err := deptRequests().Count(&stats.TotalRequests).Error; err != nil {
		return nil, err
	}
	if err := deptRequests().Where("r.status = ?", models.StatusPending).
		Count(&stats.PendingRequests).Error; err != nil {
		return nil, err
	}
	if err := deptRequests().Where("r.status = ?", models.StatusCompleted).
		Count(&stats.CompletedRequests).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

type ServiceStats struct {
	ServiceID         string  `json:"service_id"`
	ServiceName       string  `json:"service_name"`
	ServiceType       string  `json:"service_type"`
	Fee               float64 `json:"fee"`
	TotalRequests     int64   `json:"total_requests"`
	PendingRequests   int64   `json:"pending_requests"`
	CompletedRequests int64   `json:"completed_requests"`
	TotalPayments     int64   `json:"total_payments"`
	TotalRevenue      float64 `json:"total_revenue"`
}

// ServiceStats aggregates request counts and successful-payment revenue for
// one service within a department.
func (s *ReportService) ServiceStats(deptID, serviceID string) (*ServiceStats, error) {
	var service models.Service
	if err := s.db.Where("service_id = ? AND dept_id = ?", serviceID, deptID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	stats := &ServiceStats{
		ServiceID:   service.ServiceID,
		ServiceName: service.ServiceName,
		ServiceType: service.ServiceType,
		Fee:         service.Fee,
	}

	requests := func() *gorm.DB {
		return s.db.Model(&models.Request{}).Where("service_id = ?", serviceID)
	}

	if err := requests().Count(&stats.TotalRequests).Error; err != nil {
		return nil, err
	}
	if err := requests().Where("status = ?", models.StatusPending).
		Count(&stats.PendingRequests).Error; err != nil {
		return nil, err
	}
	if err := requests().Where("status = ?", models.StatusCompleted).
		Count(&stats.CompletedRequests).Error; err != nil {
		return nil, err
	}

	successful := s.db.Model(&models.Payment{}).
		Where("service_id = ? AND payment_status = ?", serviceID, models.PaymentStatusSuccess)
	if err := successful.Count(&stats.TotalPayments).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Payment{}).
		Where("service_id = ? AND payment_status = ?", serviceID, models.PaymentStatusSuccess).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
