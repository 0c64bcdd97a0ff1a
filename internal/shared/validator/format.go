package validator

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	// cpfRegex matches a normalised CPF: exactly 11 digits
	cpfRegex = regexp.MustCompile(`^\d{11}$`)
	// phoneRegex matches a normalised phone: 10 to 15 digits
	phoneRegex = regexp.MustCompile(`^\d{10,15}$`)
	nonDigit   = regexp.MustCompile(`\D`)
)

// DigitsOnly strips formatting characters such as dots, dashes and spaces
// Example: 123.456.789-01 -> 12345678901
func DigitsOnly(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// IsCPF reports whether s contains exactly 11 digits once formatting is removed
func IsCPF(s string) bool {
	return cpfRegex.MatchString(DigitsOnly(s))
}

// IsPhone reports whether s contains 10 to 15 digits once formatting is removed
func IsPhone(s string) bool {
	return phoneRegex.MatchString(DigitsOnly(s))
}

// ValidateCPF is registered as the "cpf" tag
func ValidateCPF(fl validator.FieldLevel) bool {
	return IsCPF(fl.Field().String())
}

// ValidatePhone is registered as the "phone" tag. Blank is accepted: phone is optional.
func ValidatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	return phone == "" || IsPhone(phone)
}

// ValidateTrimMin is registered as "trimmin=N": at least N characters after trimming spaces
func ValidateTrimMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}
