package identity

import (
	"net/mail"
	"regexp"
	"strings"
)

const (
	PASSWORD_MIN_LEN = 8
	PASSWORD_MAX_LEN = 512
)

func SanitizeEmail(email string) string {
	email = strings.ToLower(email)
	email = strings.Trim(email, " \n\r")
	return email
}

// CheckEmailFormat to check if input string is a correct email address
func CheckEmailFormat(email string) bool {
	if len(email) > 254 {
		return false
	}
	_, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	emailRule := regexp.MustCompile(`^[a-zA-Z0-9._%+'-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRule.MatchString(email)
}

// BlurEmailAddress transforms an email address to reduce exposed personal info
func BlurEmailAddress(email string) string {
	items := strings.Split(email, "@")
	if len(items) < 1 || len(items[0]) < 1 {
		return "****@**"
	}
	return string([]rune(items[0])[0]) + "****@" + strings.Join(items[1:], "")
}

var (
	lowercaseRule = regexp.MustCompile("[a-z]")
	uppercaseRule = regexp.MustCompile("[A-Z]")
	numberRule    = regexp.MustCompile(`\d`)
	symbolRule    = regexp.MustCompile(`\W`)
)

// CheckPasswordFormat to check if password fulfills the password rules:
// bounded length plus at least two character classes.
func CheckPasswordFormat(password string) bool {
	pl := len(password)
	if pl < PASSWORD_MIN_LEN || pl > PASSWORD_MAX_LEN {
		return false
	}

	var classes = 0
	if lowercaseRule.MatchString(password) {
		classes++
	}
	if uppercaseRule.MatchString(password) {
		classes++
	}
	if numberRule.MatchString(password) {
		classes++
	}
	if symbolRule.MatchString(password) {
		classes++
	}
	return classes >= 2
}
