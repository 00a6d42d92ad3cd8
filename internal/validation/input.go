package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Ограничения полей профиля
const (
	MinNameLength     = 2
	MaxNameLength     = 100
	MaxBioLength      = 500
	MaxLocationLength = 100
	MaxSkillLength    = 50
	MaxSkillsCount    = 50
)

var linkedInRe = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/(in|pub)/[A-Za-z0-9\-_.]+/?$`)

// ValidateLength проверяет длину строки в символах. min или max равные 0 не проверяются.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	switch {
	case min > 0 && max > 0 && (length < min || length > max):
		return fmt.Errorf("%s must be between %d and %d characters", fieldName, min, max)
	case min > 0 && length < min:
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	case max > 0 && length > max:
		return fmt.Errorf("%s cannot exceed %d characters", fieldName, max)
	}
	return nil
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("Email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return fmt.Errorf("Please enter a valid email")
	}
	return nil
}

func ValidateName(name string) error {
	return ValidateLength("Name", strings.TrimSpace(name), MinNameLength, MaxNameLength)
}

func ValidateBio(bio *string) error {
	if bio == nil {
		return nil
	}
	return ValidateLength("Bio", *bio, 0, MaxBioLength)
}

func ValidateLocation(location *string) error {
	if location == nil {
		return nil
	}
	return ValidateLength("Location", *location, 0, MaxLocationLength)
}

// IsLinkedInURL пустая строка допустима: так профиль очищается.
func IsLinkedInURL(link string) bool {
	return link == "" || linkedInRe.MatchString(link)
}

func ValidateLinkedIn(link *string) error {
	if link == nil || IsLinkedInURL(strings.TrimSpace(*link)) {
		return nil
	}
	return fmt.Errorf("Please enter a valid LinkedIn profile URL")
}

// NormalizeSkills обрезает пробелы, убирает пустые значения и дубликаты без учёта регистра.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	return out
}

// ValidateSkills проверяет уже нормализованный список навыков.
func ValidateSkills(fieldName string, skills []string) error {
	if len(skills) > MaxSkillsCount {
		return fmt.Errorf("%s cannot contain more than %d skills", fieldName, MaxSkillsCount)
	}
	for _, skill := range skills {
		if utf8.RuneCountInString(skill) > MaxSkillLength {
			return fmt.Errorf("%s: skill cannot exceed %d characters", fieldName, MaxSkillLength)
		}
	}
	return nil
}
