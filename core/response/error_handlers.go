package response

import (
	"errors"
	"net/http"
)

type statusCoder interface {
	StatusCode() int
}

// AsHTTPError converts err to an HTTPError. Errors exposing StatusCode()
// map to the matching predefined error; everything else becomes 500.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCoder
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = ErrInternalServerError
	}
	return base.WithError(err)
}

// ErrorHandler writes err as plain text.
func ErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := AsHTTPError(err)
	_ = String(httpErr.Message, httpErr.Status)(w, r)
}

// JSONErrorHandler writes err as a JSON document.
func JSONErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := AsHTTPError(err)
	_ = JSON(httpErr, httpErr.Status)(w, r)
}
