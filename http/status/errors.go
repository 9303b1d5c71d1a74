package status

import "errors"

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest           = NewError(BadRequest, "bad request")
	ErrEmptyMessage         = NewError(BadRequest, "empty request message")
	ErrBadStartLine         = NewError(BadRequest, "malformed request line")
	ErrBadHeaderField       = NewError(BadRequest, "malformed header field")
	ErrDuplicateHeader      = NewError(BadRequest, "duplicated header field")
	ErrNonZeroContentLength = NewError(BadRequest, "request must not carry a body")
	ErrLineTooLong          = NewError(BadRequest, "request line is too long")
	ErrTooManyHeaders       = NewError(BadRequest, "too many headers")
	ErrHeadTooLarge         = NewError(BadRequest, "request head is too large")
	ErrNotFound             = NewError(NotFound, "not found")
	ErrInternalServerError  = NewError(InternalServerError, "internal server error")
	ErrMethodNotImplemented = NewError(NotImplemented, "request method is not supported")
)

// CodeOf extracts the status code carried by the error. Errors that aren't HTTPError
// are considered internal.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}
