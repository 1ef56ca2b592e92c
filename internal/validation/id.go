package validation

import (
	"fmt"
	"regexp"
)

// EntityIDPattern определяет допустимый формат идентификатора вопроса, ответа или уведомления
// Латинские буквы, цифры, дефис и нижнее подчеркивание (uuid и числовые id проходят)
var EntityIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

const (
	// MaxEntityIDLen максимальная длина идентификатора
	MaxEntityIDLen = 64
)

// ValidateEntityID проверяет идентификатор перед подстановкой в путь запроса
func ValidateEntityID(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}

	if len(id) > MaxEntityIDLen {
		return fmt.Errorf("id must not exceed %d characters", MaxEntityIDLen)
	}

	if !EntityIDPattern.MatchString(id) {
		return fmt.Errorf("id can only contain letters (a-z, A-Z), numbers (0-9), hyphens (-) and underscores (_)")
	}

	return nil
}
