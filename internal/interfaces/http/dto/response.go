package dto

// Response is the envelope every endpoint returns. Code is 200 on success
// and mirrors the HTTP status on errors; Data is null on errors.
type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Code:    200,
		Data:    data,
		Message: "success",
	}
}

// NewErrorResponse creates an error response with the given status code
func NewErrorResponse(code int, message string) Response {
	return Response{
		Code:    code,
		Data:    nil,
		Message: message,
	}
}

// ListRequest represents common list/pagination request parameters
type ListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// DefaultListRequest returns a list request with defaults
func DefaultListRequest() ListRequest {
	return ListRequest{Page: 1, PageSize: 20}
}
