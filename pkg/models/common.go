package models

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorResponse wraps ErrorBody the way every endpoint reports failures.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewErrorResponse builds an error envelope. details is optional.
func NewErrorResponse(code, message, details string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}}
}
