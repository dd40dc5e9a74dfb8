package dto

// APIResponse is the standard response envelope: an optional human-readable
// message (or a field-error mapping) under "detail" and an optional payload
// under "data".
type APIResponse struct {
	Detail interface{} `json:"detail,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// NewSuccessResponse creates a response carrying a message and a payload
func NewSuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Detail: message,
		Data:   data,
	}
}

// NewMessageResponse creates a response carrying only a message
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Detail: message,
	}
}

// NewFieldErrorResponse creates a validation-failure response. Every
// field-level error is listed under its field name as a list of strings,
// even single errors.
func NewFieldErrorResponse(fields map[string][]string) APIResponse {
	return APIResponse{
		Detail: fields,
	}
}

// Pagination describes the window of a filtered list response. Total always
// reflects the full filtered count independent of the window.
type Pagination struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}
