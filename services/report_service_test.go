package services

import (
	"errors"
	"testing"

	"citizen-services-api/models"
)

func TestListAllRequestsOrdering(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "UID00000001")
	seedDepartment(t, db, "DEPT_00000001", "Water Board")
	seedDepartment(t, db, "DEPT_00000002", "Electricity Board")
	waterService := seedService(t, db, "SERV_000001@DEPT_00000001", "DEPT_00000001",
		models.ServiceTypeNonPayable, 0, true)
	powerService := seedService(t, db, "SERV_000001@DEPT_00000002", "DEPT_00000002",
		models.ServiceTypeNonPayable, 0, true)
	engine := NewRequestService(db, testSuperAdminCode)

	// Interleave creates across departments.
	for _, serviceID := range []string{waterService.ServiceID, powerService.ServiceID, waterService.ServiceID} {
		if _, err := engine.CreateRequest(CreateRequestInput{
			UserID:      user.UserID,
			ServiceID:   serviceID,
			RequestType: models.RequestTypeRequest,
		}); err != nil {
			t.Fatalf("CreateRequest failed: %v", err)
		}
	}

	reports := NewReportService(db)
	rows, err := reports.ListAllRequests(RequestFilter{})
	if err != nil {
		t.Fatalf("ListAllRequests failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want 3", len(rows))
	}

	// Departments sort alphabetically, so Electricity Board comes first.
	if rows[0].DeptName != "Electricity Board" {
		t.Errorf("first row dept = %q, want Electricity Board", rows[0].DeptName)
	}

	// Within a department, newer requests come first.
	if rows[1].DeptName != "Water Board" || rows[2].DeptName != "Water Board" {
		t.Fatalf("rows 1-2 not both Water Board: %q, %q", rows[1].DeptName, rows[2].DeptName)
	}
	if rows[1].RequestID < rows[2].RequestID {
		t.Errorf("within-department order wrong: %d before %d", rows[1].RequestID, rows[2].RequestID)
	}
}

func TestListAllRequestsFilters(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "UID00000001")
	admin := seedAdmin(t, db, "A00000001")
	seedDepartment(t, db, "DEPT_00000001", "Water Board")
	seedDepartment(t, db, "DEPT_00000002", "Electricity Board")
	waterService := seedService(t, db, "SERV_000001@DEPT_00000001", "DEPT_00000001",
		models.ServiceTypeNonPayable, 0, true)
	powerService := seedService(t, db, "SERV_000001@DEPT_00000002", "DEPT_00000002",
		models.ServiceTypeNonPayable, 0, true)
	engine := NewRequestService(db, testSuperAdminCode)

	r1, err := engine.CreateRequest(CreateRequestInput{
		UserID: user.UserID, ServiceID: waterService.ServiceID, RequestType: models.RequestTypeRequest,
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if _, err := engine.CreateRequest(CreateRequestInput{
		UserID: user.UserID, ServiceID: powerService.ServiceID, RequestType: models.RequestTypeComplaint,
	}); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if err := engine.TransitionStatus(r1.RequestID, models.StatusCompleted, admin.AdminID, nil); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	reports := NewReportService(db)

	rows, err := reports.ListAllRequests(RequestFilter{Status: models.StatusCompleted})
	if err != nil {
		t.Fatalf("status filter failed: %v", err)
	}
	if len(rows) != 1 || rows[0].RequestID != r1.RequestID {
		t.Errorf("status filter returned %d rows, want request %d", len(rows), r1.RequestID)
	}

	rows, err = reports.ListAllRequests(RequestFilter{RequestType: models.RequestTypeComplaint})
	if err != nil {
		t.Fatalf("type filter failed: %v", err)
	}
	if len(rows) != 1 || rows[0].RequestType != models.RequestTypeComplaint {
		t.Errorf("type filter returned %d rows", len(rows))
	}

	rows, err = reports.ListAllRequests(RequestFilter{DeptID: "DEPT_00000001"})
	if err != nil {
		t.Fatalf("dept filter failed: %v", err)
	}
	if len(rows) != 1 || rows[0].DeptID != "DEPT_00000001" {
		t.Errorf("dept filter returned %d rows", len(rows))
	}

	rows, err = reports.ListAllRequests(RequestFilter{
		Status: models.StatusCompleted, RequestType: models.RequestTypeComplaint,
	})
	if err != nil {
		t.Fatalf("combined filter failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("combined filter returned %d rows, want 0", len(rows))
	}
}

func TestListUserRequestsScoping(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "UID00000001")
	bob := seedUser(t, db, "UID00000002")
	seedDepartment(t, db, "DEPT_00000001", "Water Board")
	service := seedService(t, db, "SERV_000001@DEPT_00000001", "DEPT_00000001",
		models.ServiceTypeNonPayable, 0, true)
	engine := NewRequestService(db, testSuperAdminCode)

	for _, userID := range []string{alice.UserID, bob.UserID, alice.UserID} {
		if _, err := engine.CreateRequest(CreateRequestInput{
			UserID: userID, ServiceID: service.ServiceID, RequestType: models.RequestTypeRequest,
		}); err != nil {
			t.Fatalf("CreateRequest failed: %v", err)
		}
	}

	rows, err := NewReportService(db).ListUserRequests(alice.UserID, RequestFilter{})
	if err != nil {
		t.Fatalf("ListUserRequests failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row.UserID != alice.UserID {
			t.Errorf("row user = %q, want %q", row.UserID, alice.UserID)
		}
	}
	if rows[0].RequestID < rows[1].RequestID {
		t.Errorf("newest-first order wrong: %d before %d", rows[0].RequestID, rows[1].RequestID)
	}
}

func TestGroupByDepartment(t *testing.T) {
	rows := []RequestSummary{
		{RequestID: 3, DeptID: "DEPT_B", DeptName: "Water Board"},
		{RequestID: 2, DeptID: "DEPT_A", DeptName: "Electricity Board"},
		{RequestID: 1, DeptID: "DEPT_B", DeptName: "Water Board"},
	}

	groups := GroupByDepartment(rows)
	if len(groups) != 2 {
		t.Fatalf("group count = %d, want 2", len(groups))
	}

	// Groups keep first-encounter order from the input.
	if groups[0].DeptID != "DEPT_B" || groups[1].DeptID != "DEPT_A" {
		t.Errorf("group order = %q, %q", groups[0].DeptID, groups[1].DeptID)
	}
	if len(groups[0].Requests) != 2 || len(groups[1].Requests) != 1 {
		t.Errorf("group sizes = %d, %d", len(groups[0].Requests), len(groups[1].Requests))
	}
	if groups[0].Requests[0].RequestID != 3 || groups[0].Requests[1].RequestID != 1 {
		t.Errorf("group internal order lost: %d, %d",
			groups[0].Requests[0].RequestID, groups[0].Requests[1].RequestID)
	}
}

func TestGroupByDepartmentEmpty(t *testing.T) {
	if groups := GroupByDepartment(nil); len(groups) != 0 {
		t.Errorf("group count = %d, want 0", len(groups))
	}
}

func TestDepartmentStats(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "UID00000001")
	admin := seedAdmin(t, db, "A00000001")
	seedDepartment(t, db, "DEPT_00000001", "Water Board")
	s1 := seedService(t, db, "SERV_000001@DEPT_00000001", "DEPT_00000001",
		models.ServiceTypeNonPayable, 0, true)
	seedService(t, db, "SERV_000002@DEPT_00000001", "DEPT_00000001",
		models.ServiceTypePayable, 100, true)
	engine := NewRequestService(db, testSuperAdminCode)

	r1, err := engine.CreateRequest(CreateRequestInput{
		UserID: user.UserID, ServiceID: s1.ServiceID, RequestType: models.RequestTypeRequest,
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if _, err := engine.CreateRequest(CreateRequestInput{
		UserID: user.UserID, ServiceID: s1.ServiceID, RequestType: models.RequestTypeComplaint,
	}); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if err := engine.TransitionStatus(r1.RequestID, models.StatusCompleted, admin.AdminID, nil); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	stats, err := NewReportService(db).DepartmentStats("DEPT_00000001")
	if err != nil {
		t.Fatalf("DepartmentStats failed: %v", err)
	}
	if stats.TotalServices != 2 {
		t.Errorf("total services = %d, want 2", stats.TotalServices)
	}
	if stats.TotalRequests != 2 {
		t.Errorf("total requests = %d, want 2", stats.TotalRequests)
	}
	if stats.PendingRequests != 1 {
		t.Errorf("pending requests = %d, want 1", stats.PendingRequests)
	}
	if stats.CompletedRequests != 1 {
		t.Errorf("completed requests = %d, want 1", stats.CompletedRequests)
	}
}

func TestDepartmentStatsNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewReportService(db).DepartmentStats("DEPT_missing")
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("err = %v, want ErrDepartmentNotFound", err)
	}
}

func TestServiceStats(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "UID00000001")
	seedDepartment(t, db, "DEPT_00000001", "Water Board")
	service := seedService(t, db, "SERV_000002@DEPT_00000001", "DEPT_00000001",
		models.ServiceTypePayable, 150, true)
	seedPayment(t, db, user.UserID, service.ServiceID, "TXN1", models.PaymentStatusSuccess, 150)
	seedPayment(t, db, user.UserID, service.ServiceID, "TXN2", models.PaymentStatusSuccess, 150)
	seedPayment(t, db, user.UserID, service.ServiceID, "TXN3", models.PaymentStatusFailed, 150)
	engine := NewRequestService(db, testSuperAdminCode)

	ref := "TXN1"
	if _, err := engine.CreateRequest(CreateRequestInput{
		UserID:         user.UserID,
		ServiceID:      service.ServiceID,
		RequestType:    models.RequestTypeRequest,
		TransactionRef: &ref,
	}); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	stats, err := NewReportService(db).ServiceStats("DEPT_00000001", service.ServiceID)
	if err != nil {
		t.Fatalf("ServiceStats failed: %v", err)
	}
	if stats.TotalRequests != 1 {
		t.Errorf("total requests = %d, want 1", stats.TotalRequests)
	}
	if stats.PendingRequests != 1 {
		t.Errorf("pending requests = %d, want 1", stats.PendingRequests)
	}
	// Failed payments count toward neither payments nor revenue.
	if stats.TotalPayments != 2 {
		t.Errorf("total payments = %d, want 2", stats.TotalPayments)
	}
	if stats.TotalRevenue != 300 {
		t.Errorf("total revenue = %v, want 300", stats.TotalRevenue)
	}
}

func TestServiceStatsWrongDepartment(t *testing.T) {
	db := newTestDB(t)
	seedDepartment(t, db, "DEPT_00000001", "Water Board")
	seedDepartment(t, db, "DEPT_00000002", "Electricity Board")
	service := seedService(t, db, "SERV_000001@DEPT_00000001", "DEPT_00000001",
		models.ServiceTypeNonPayable, 0, true)

	_, err := NewReportService(db).ServiceStats("DEPT_00000002", service.ServiceID)
	if !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("err = %v, want ErrServiceNotFound", err)
	}
}
