package auth

import (
	"regexp"
	"strings"

	"github.com/zeras-code/shopcart/pkg/errorbank"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 6

func validateEmail(email string) error {
	if email == "" {
		return errorbank.BadRequest("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errorbank.BadRequest("invalid email format")
	}
	return nil
}

func validatePassword(password, confirm string) error {
	if password == "" {
		return errorbank.BadRequest("password is required")
	}
	if len(password) < minPasswordLength {
		return errorbank.BadRequest("password must be at least 6 characters long")
	}
	if password != confirm {
		return errorbank.BadRequest("passwords do not match")
	}
	return nil
}

// formatName collapses whitespace and capitalizes the first letter of each
// word, matching how accounts were stored historically.
func formatName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errorbank.BadRequest("name is required")
	}

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	formatted := strings.Join(words, " ")

	if len(formatted) < 2 {
		return "", errorbank.BadRequest("name must be at least 2 characters long")
	}
	return formatted, nil
}
