package pkg

import "fmt"

// AppError is the transport-agnostic failure carried from usecases to the
// HTTP boundary. Code is a stable machine identifier, Message is what the
// panel shows the vendor.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Fields     []FieldError
}

// FieldError is one entry of a validation error list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HTTPError is the response-envelope form of an AppError. Non-2xx responses
// always carry success=false.
type HTTPError struct {
	Success bool         `json:"success"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewValidationError(message string, fields []FieldError) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: message, HTTPStatus: 400, Fields: fields}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{
		Success: false,
		Code:    e.Code,
		Message: e.Message,
		Errors:  e.Fields,
	}
}
