package services

import (
	"fmt"

	"wecelebrate/console/internal/constants"
	"wecelebrate/console/internal/validation"
)

// ServiceError carries an error code from internal/constants so handlers can
// pick the HTTP status. Result is set when a client configuration failed
// validation.
type ServiceError struct {
	Code    string
	Message string
	Err     error
	Result  *validation.ValidationResult
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newServiceError(code string, err error) *ServiceError {
	return &ServiceError{Code: code, Message: constants.GetErrorMessage(code), Err: err}
}
