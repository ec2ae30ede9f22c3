package dto

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code, a human message, and the
// offending fields for validation failures.
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// NewErrorResponse builds an ErrorResponse with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// NewValidationErrorResponse builds an ErrorResponse listing the invalid fields.
func NewValidationErrorResponse(fields []string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{
		Code:    "VALIDATION_FAILED",
		Message: "Missing or invalid required fields",
		Fields:  fields,
	}}
}
