package response

import "net/http"

// HTTPError is an error with the status and error code it is rendered with.
type HTTPError struct {
	Status  int
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError returns an HTTPError whose error code equals its status.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Code: status, Message: message}
}

var (
	ErrNotFound        = NewHTTPError(http.StatusNotFound, "Not Found")
	ErrTooManyRequests = NewHTTPError(http.StatusTooManyRequests, "Too Many Requests")
)
