package service

import (
	"net/http"

	commonerrors "github.com/taskboard/backend/internal/common/errors"
)

var (
	ErrValidationUsernameLength = commonerrors.NewDomainError(
		"VALIDATION_USERNAME_LENGTH",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"username must be between 3 and 32 characters",
	)

	ErrValidationUsernameChars = commonerrors.NewDomainError(
		"VALIDATION_USERNAME_CHARS",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"username may only contain letters, digits, '_' and '-'",
	)

	ErrValidationPasswordLength = commonerrors.NewDomainError(
		"VALIDATION_PASSWORD_LENGTH",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"password must be between 8 and 72 characters",
	)
)
