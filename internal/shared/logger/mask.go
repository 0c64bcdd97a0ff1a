package logger

import "strings"

// Example: john.doe@gmail.com -> j***@gmail.com
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}

	username := parts[0]
	domain := parts[1]

	if len(username) == 0 {
		return "***@" + domain
	}

	return username[:1] + "***@" + domain
}

// Example: 12345678901 -> ***.***.***-01
func MaskNationalID(cpf string) string {
	if len(cpf) < 2 {
		return "***"
	}
	return "***.***.***-" + cpf[len(cpf)-2:]
}
