package service

import (
	"regexp"
	"strings"

	"github.com/taskboard/backend/internal/common/constants"
	commonerrors "github.com/taskboard/backend/internal/common/errors"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return commonerrors.ErrUsernameRequired
	}

	if strings.TrimSpace(password) == "" {
		return commonerrors.ErrPasswordRequired
	}

	if len(username) < constants.UsernameMinLength || len(username) > constants.UsernameMaxLength {
		return ErrValidationUsernameLength
	}

	if len(password) < constants.PasswordMinLength || len(password) > constants.PasswordMaxLength {
		return ErrValidationPasswordLength
	}

	if !usernameRegex.MatchString(username) {
		return ErrValidationUsernameChars
	}

	return nil
}
