package services

import "errors"

// Engine error taxonomy. Controllers translate these to HTTP statuses with
// errors.Is; anything else is treated as an internal store failure.
var (
	ErrServiceNotFound    = errors.New("service not found")
	ErrServiceInactive    = errors.New("this service is currently unavailable")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrRequestNotFound    = errors.New("request not found")
	ErrAdminNotFound      = errors.New("admin not found")

	ErrPaymentRequired        = errors.New("payment transaction reference is required for payable services")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrPaymentNotSuccessful   = errors.New("payment not successful, cannot create request")
	ErrPaymentServiceMismatch = errors.New("payment is for a different service")
	ErrPaymentAlreadyLinked   = errors.New("payment is already linked to another request")

	ErrInvalidRequestType = errors.New("request type must be 'Request' or 'Complaint'")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrNoOpTransition     = errors.New("request already has this status")
	ErrForbidden          = errors.New("invalid superadmin code")
)
