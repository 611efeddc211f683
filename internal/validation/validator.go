package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"user-api/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+\d{1,3} \(\d{3}\) \d{3}-\d{4}$`)
)

const maxNameLength = 255

// Candidate holds raw user fields as they arrived on the wire, before any
// parsing. Age is a pointer so an absent key can be told apart from zero.
type Candidate struct {
	Email    string
	Name     string
	Age      *int
	Sex      string
	Birthday string
	Phone    string
}

// Validate runs every field rule against the candidate and returns all
// violation messages in field order. An empty slice means the candidate is
// valid. Birthday parseability is checked later, when the value is converted
// to a date.
func Validate(c Candidate) []string {
	var violations []string

	if c.Email == "" {
		violations = append(violations, "Email не должен быть пустым.")
	} else if !emailPattern.MatchString(c.Email) {
		violations = append(violations, fmt.Sprintf("Email '%s' не является допустимым email адресом.", c.Email))
	}

	if c.Name == "" {
		violations = append(violations, "Имя не должно быть пустым.")
	} else if utf8.RuneCountInString(c.Name) > maxNameLength {
		violations = append(violations, "Имя пользователя не должно превышать 255 символов.")
	}

	if c.Age == nil {
		violations = append(violations, "Возраст не должен быть пустым.")
	} else if *c.Age < 0 || *c.Age > 150 {
		violations = append(violations, "Возраст должен быть от 0 до 150 лет.")
	}

	if c.Sex == "" {
		violations = append(violations, "Пол не должен быть пустым.")
	} else if domain.Sex(c.Sex) != domain.SexMale && domain.Sex(c.Sex) != domain.SexFemale {
		violations = append(violations, "Пол должен быть 'male' или 'female'.")
	}

	if c.Birthday == "" {
		violations = append(violations, "Дата рождения не должна быть пустой.")
	}

	if c.Phone == "" {
		violations = append(violations, "Номер телефона не должен быть пустым.")
	} else if !phonePattern.MatchString(c.Phone) {
		violations = append(violations, "Неправильный формат номера телефона.")
	}

	return violations
}
