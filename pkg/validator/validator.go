package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
var phoneRegex = regexp.MustCompile(`^[0-9 +()-]+$`)

func ValidateRegister(username, password, firstName, lastName, phone string) ValidationErrors {
	errs := make(ValidationErrors)

	// Username
	validateUsername(username, errs)

	// Password
	validatePassword(password, errs)

	// Names
	validateName("first_name", "First name", firstName, errs)
	validateName("last_name", "Last name", lastName, errs)

	// Phone
	phone = strings.TrimSpace(phone)
	if phone == "" {
		errs.Add("phone", "Phone is required")
	} else if len(phone) < 7 {
		errs.Add("phone", "Phone must be at least 7 characters")
	} else if len(phone) > 20 {
		errs.Add("phone", "Phone is too long")
	} else if !phoneRegex.MatchString(phone) {
		errs.Add("phone", "Phone can only contain digits, spaces, +, -, ( and )")
	}

	return errs
}

func ValidateLogin(username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func validateUsername(username string, errs ValidationErrors) {
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) < 3 {
		errs.Add("username", "Username must be at least 3 characters")
	} else if len(username) > 50 {
		errs.Add("username", "Username is too long")
	} else if !usernameRegex.MatchString(username) {
		errs.Add("username", "Username can only contain letters, numbers, _ and -")
	}
}

// bcrypt only reads the first 72 bytes of a password.
func validatePassword(password string, errs ValidationErrors) {
	if utf8.RuneCountInString(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
	} else if len(password) > 72 {
		errs.Add("password", "Password must be at most 72 bytes")
	}
}

func validateName(field, label, value string, errs ValidationErrors) {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.Add(field, label+" is required")
	} else if utf8.RuneCountInString(value) > 100 {
		errs.Add(field, label+" is too long")
	}
}
