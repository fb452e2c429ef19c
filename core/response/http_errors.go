package response

import "net/http"

// HTTPError is an error with a status code and a JSON body.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status of the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy with message replacing the status text.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy carrying details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy recording err as details["cause"].
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

func newHTTPError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

var (
	ErrBadRequest            = newHTTPError(http.StatusBadRequest, "bad_request")
	ErrNotFound              = newHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed      = newHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrConflict              = newHTTPError(http.StatusConflict, "conflict")
	ErrRequestEntityTooLarge = newHTTPError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrUnprocessableEntity   = newHTTPError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrInternalServerError   = newHTTPError(http.StatusInternalServerError, "internal_server_error")
	ErrBadGateway            = newHTTPError(http.StatusBadGateway, "bad_gateway")
	ErrServiceUnavailable    = newHTTPError(http.StatusServiceUnavailable, "service_unavailable")
)

var httpErrorsByStatus = func() map[int]HTTPError {
	m := make(map[int]HTTPError)
	for _, e := range []HTTPError{
		ErrBadRequest,
		ErrNotFound,
		ErrMethodNotAllowed,
		ErrConflict,
		ErrRequestEntityTooLarge,
		ErrUnprocessableEntity,
		ErrInternalServerError,
		ErrBadGateway,
		ErrServiceUnavailable,
	} {
		m[e.Status] = e
	}
	return m
}()
