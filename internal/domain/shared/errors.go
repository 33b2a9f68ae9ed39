package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Is matches domain errors by code so errors.Is works against the shared
// sentinels regardless of the specific message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Error codes shared across the ledger domain
const (
	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidState     = "INVALID_STATE"
	CodeConfiguration    = "CONFIGURATION_ERROR"
	CodeUnbalancedEntry  = "UNBALANCED_ENTRY"
	CodeBillDirection    = "BILL_DIRECTION_MISMATCH"
	CodeInsufficientBill = "INSUFFICIENT_PENDING_AMOUNT"
)

// Common domain errors
var (
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists    = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput     = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState     = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrConfiguration    = NewDomainError(CodeConfiguration, "System account mapping is not configured")
	ErrUnbalancedEntry  = NewDomainError(CodeUnbalancedEntry, "Journal entry debits and credits do not balance")
	ErrBillDirection    = NewDomainError(CodeBillDirection, "Bill reference side does not match account direction")
	ErrInsufficientBill = NewDomainError(CodeInsufficientBill, "Settlement exceeds the bill's pending amount")
)

// NewNotFoundError creates a not-found error with a specific message
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewConflictError creates a duplicate/conflict error with a specific message
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeAlreadyExists, message)
}

// NewValidationError creates an invalid-input error with a specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeInvalidInput, message)
}

// NewConfigurationError creates a configuration error with a specific message.
// Configuration errors require admin intervention and must never be retried or
// defaulted silently.
func NewConfigurationError(message string) *DomainError {
	return NewDomainError(CodeConfiguration, message)
}
