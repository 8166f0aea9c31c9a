package dto

import "time"

// APIResponse is the uniform response envelope. Business-rule failures are
// reported with success=false and a message; the envelope shape never changes.
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse creates a success envelope with data
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewFailureResponse creates a success=false envelope carrying a
// business-rule rejection. Rejections are expected outcomes, so the
// attached detail is marked as a warning rather than an error.
func NewFailureResponse(code ErrorCode, message string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Error:     NewErrorDetail(code, message).WithSeverity(ErrorSeverityWarning),
		Timestamp: time.Now(),
	}
}

// PaginationInfo describes the position of a page within a listing
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"42"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
