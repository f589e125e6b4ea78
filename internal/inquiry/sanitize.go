package inquiry

import (
	"regexp"
	"strings"
)

const (
	maxMessageLen = 1000
	maxNameLen    = 100
	maxPhoneLen   = 15
	maxEmailLen   = 255
)

var (
	angleBrackets = regexp.MustCompile(`[<>]`)
	controlChars  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	lineBreaks    = regexp.MustCompile(`[\r\n]+`)
	nameDisallow  = regexp.MustCompile(`[^a-zA-Z\x{0900}-\x{097F}\s.\-]`)
	phoneDisallow = regexp.MustCompile(`[^0-9+]`)
)

// SanitizeMessage flattens free text from the form onto one line and caps its length.
func SanitizeMessage(text string) string {
	text = angleBrackets.ReplaceAllString(text, "")
	text = controlChars.ReplaceAllString(text, "")
	text = lineBreaks.ReplaceAllString(text, " ")

	return truncate(strings.TrimSpace(text), maxMessageLen)
}

// SanitizeName keeps Latin and Devanagari letters, spaces, dots and hyphens.
func SanitizeName(name string) string {
	name = nameDisallow.ReplaceAllString(name, "")

	return truncate(strings.TrimSpace(name), maxNameLen)
}

func SanitizePhone(phone string) string {
	return truncate(phoneDisallow.ReplaceAllString(phone, ""), maxPhoneLen)
}

func SanitizeEmail(email string) string {
	email = angleBrackets.ReplaceAllString(email, "")

	return truncate(strings.ToLower(strings.TrimSpace(email)), maxEmailLen)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
