package validation

import (
	"fmt"
	"unicode/utf8"
)

const MinPasswordLength = 6

// ValidatePassword проверяет минимальную длину пароля.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("Password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
