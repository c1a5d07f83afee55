package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes
const (
	ErrCodeRecipeNotFound  = "RECIPE_NOT_FOUND"
	ErrCodeInvalidRecipeID = "INVALID_RECIPE_ID"
	ErrCodeRecipeCast      = "RECIPE_CAST_FAILED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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

// Common domain errors
var (
	ErrRecipeNotFound  = NewDomainError(ErrCodeRecipeNotFound, "recipe not found")
	ErrInvalidRecipeID = NewDomainError(ErrCodeInvalidRecipeID, "malformed recipe id")
	ErrRecipeCast      = NewDomainError(ErrCodeRecipeCast, "recipe field cannot be cast")
)
