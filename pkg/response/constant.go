package response

import "time"

const (
	MessageSuccess          = "Success"
	DefaultErrorMessage     = "Something went wrong"
	InternalServerErrorCode = 500
	ValidationErrorCode     = 1

	DateFormat     = time.DateOnly
	DateTimeFormat = time.RFC3339
)
