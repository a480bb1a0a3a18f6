package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryInternal     ErrorCategory = "INTERNAL"
)

type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Unwrap() error {
	return e.cause
}

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

// Is makes every derived WithCause copy match its template under errors.Is,
// so callers can compare against the exported variables below.
func (e *domainError) Is(target error) bool {
	t, ok := target.(*domainError)
	if !ok {
		return false
	}
	return e.code == t.code
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrUnauthorized = NewDomainError(
		"UNAUTHORIZED",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"unauthorized",
	)

	ErrInvalidCredentials = NewDomainError(
		"INVALID_CREDENTIALS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid credentials",
	)

	ErrUsernameTaken = NewDomainError(
		"USERNAME_TAKEN",
		CategoryConflict,
		http.StatusConflict,
		"username already taken",
	)

	ErrUsernameRequired = NewDomainError(
		"USERNAME_REQUIRED",
		CategoryValidation,
		http.StatusBadRequest,
		"username is required",
	)

	ErrPasswordRequired = NewDomainError(
		"PASSWORD_REQUIRED",
		CategoryValidation,
		http.StatusBadRequest,
		"password is required",
	)

	ErrBoardNotFound = NewDomainError(
		"BOARD_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"board not found",
	)

	ErrTaskNotFound = NewDomainError(
		"TASK_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"task not found",
	)

	ErrBoardNameRequired = NewDomainError(
		"BOARD_NAME_REQUIRED",
		CategoryValidation,
		http.StatusBadRequest,
		"board name is required",
	)

	ErrTaskTitleRequired = NewDomainError(
		"TASK_TITLE_REQUIRED",
		CategoryValidation,
		http.StatusBadRequest,
		"task title is required",
	)

	ErrInvalidTaskStatus = NewDomainError(
		"INVALID_TASK_STATUS",
		CategoryValidation,
		http.StatusBadRequest,
		"task status must be Pending or Completed",
	)

	ErrStorage = NewDomainError(
		"STORAGE_FAILURE",
		CategoryInternal,
		http.StatusInternalServerError,
		"storage failure",
	)
)
