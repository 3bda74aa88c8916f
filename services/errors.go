package services

import "fmt"

// Error codes surfaced to API clients. Each is a request-level validation
// failure except CodeInfrastructure, which covers transient backend faults.
const (
	CodeInvalidTransition    = "INVALID_TRANSITION"
	CodeUnauthorizedActor    = "UNAUTHORIZED_ACTOR"
	CodeAlreadyTerminal      = "ALREADY_TERMINAL"
	CodeAlreadyAssigned      = "ALREADY_ASSIGNED"
	CodePaymentIncomplete    = "PAYMENT_INCOMPLETE"
	CodeAmountOutOfRange     = "AMOUNT_OUT_OF_RANGE"
	CodeAlreadyProcessed     = "ALREADY_PROCESSED"
	CodeNotFound             = "NOT_FOUND"
	CodeValidation           = "VALIDATION_ERROR"
	CodePersonnelUnavailable = "PERSONNEL_UNAVAILABLE"
	CodeInfrastructure       = "INFRASTRUCTURE_ERROR"
)

// ServiceError is a typed, client-facing error with a stable code
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// ErrInvalidTransition reports a status change that is not an allowed edge
func ErrInvalidTransition(from, to interface{}) *ServiceError {
	return &ServiceError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition order from %v to %v", from, to),
	}
}

// ErrUnauthorizedActor reports a transition the acting role may not perform
func ErrUnauthorizedActor(role string, to interface{}) *ServiceError {
	return &ServiceError{
		Code:    CodeUnauthorizedActor,
		Message: fmt.Sprintf("role %q is not allowed to set status %v", role, to),
	}
}

// ErrAlreadyTerminal reports an operation on an order in a terminal state
func ErrAlreadyTerminal(status interface{}) *ServiceError {
	return &ServiceError{
		Code:    CodeAlreadyTerminal,
		Message: fmt.Sprintf("order is already in terminal state %v", status),
	}
}

// ErrAlreadyAssigned reports a second assignment attempt on the same slot
func ErrAlreadyAssigned(kind string) *ServiceError {
	return &ServiceError{
		Code:    CodeAlreadyAssigned,
		Message: fmt.Sprintf("order already has a %s person assigned", kind),
	}
}

// ErrPaymentIncomplete reports a dispatch attempt before the remaining
// balance of a deposit order was proven paid
func ErrPaymentIncomplete(message string) *ServiceError {
	return &ServiceError{Code: CodePaymentIncomplete, Message: message}
}

// ErrAmountOutOfRange reports a withdrawal amount outside configured bounds
func ErrAmountOutOfRange(min, max float64) *ServiceError {
	return &ServiceError{
		Code:    CodeAmountOutOfRange,
		Message: fmt.Sprintf("withdrawal amount must be between %.2f and %.2f", min, max),
	}
}

// ErrAlreadyProcessed reports an admin action on a non-pending request
func ErrAlreadyProcessed(status string) *ServiceError {
	return &ServiceError{
		Code:    CodeAlreadyProcessed,
		Message: fmt.Sprintf("request was already processed (status %q)", status),
	}
}

// ErrNotFound reports a missing entity
func ErrNotFound(what string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: what + " not found"}
}

// ErrValidation reports a malformed or incomplete request
func ErrValidation(message string) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: message}
}

// ErrPersonnelUnavailable reports an assignment to inactive or unavailable
// delivery personnel
func ErrPersonnelUnavailable(message string) *ServiceError {
	return &ServiceError{Code: CodePersonnelUnavailable, Message: message}
}
