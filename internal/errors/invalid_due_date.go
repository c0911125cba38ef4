package errors

import "net/http"

var ErrInvalidDueDate = &Exception{
	Message:    "due date must be YYYY-MM-DD",
	StatusCode: http.StatusBadRequest,
}
