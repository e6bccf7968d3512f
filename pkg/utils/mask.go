package utils

import "regexp"

var emailLocalRegex = regexp.MustCompile(`^([^@])[^@]*(@.+)$`)

// MaskSecret hides a token for logging, keeping only its last four characters.
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return "***"
	}
	return "***" + s[len(s)-4:]
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	if !emailLocalRegex.MatchString(email) {
		return MaskSecret(email)
	}
	return emailLocalRegex.ReplaceAllString(email, "$1***$2")
}
