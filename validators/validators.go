package validators

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// Letters (accented Latin included), spaces, apostrophes, periods, hyphens.
	nameRegex = regexp.MustCompile(`^[a-zA-ZÀ-ÖØ-öø-ÿ\s'.-]+$`)

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Optional area code (with or without parentheses), 3-5 digit exchange,
	// 4 digit line, common separators tolerated; or a bare 9-11 digit run.
	phoneRegex = regexp.MustCompile(`^(?:\(\d{2}\)|\d{2})?[\s.-]?\d{3,5}[-\s.]?\d{4}$|^\d{9,11}$`)

	htmlTagRegex      = regexp.MustCompile(`<[^>]*>`)
	jsSchemeRegex     = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRegex = regexp.MustCompile(`(?i)on\w+=`)
)

// ValidateName reports whether name is acceptable for a buyer: trimmed
// length between 3 and 100 characters, allow-listed characters only.
func ValidateName(name string) bool {
	trimmed := strings.TrimSpace(name)
	length := len([]rune(trimmed))
	if length < 3 || length > 100 {
		return false
	}
	return nameRegex.MatchString(trimmed)
}

// ValidateContact reports whether contact looks like an email address or
// a phone number. Trimmed length must be between 5 and 100 characters.
func ValidateContact(contact string) bool {
	trimmed := strings.TrimSpace(contact)
	length := len([]rune(trimmed))
	if length < 5 || length > 100 {
		return false
	}
	return emailRegex.MatchString(trimmed) || phoneRegex.MatchString(trimmed)
}

// ValidateNumberQuantity reports whether quantity is a legal pool size.
func ValidateNumberQuantity(quantity int) bool {
	return quantity >= 1 && quantity <= 1000
}

// ValidateTicketNumber reports whether number falls inside the current pool.
func ValidateTicketNumber(number, max int) bool {
	return number >= 1 && number <= max
}

// SanitizeText strips HTML tags, javascript: scheme prefixes and inline
// event-handler patterns, then trims surrounding whitespace. Stripping
// repeats until the text stops changing, so the result is a fixpoint:
// SanitizeText(SanitizeText(s)) == SanitizeText(s).
func SanitizeText(text string) string {
	for {
		next := htmlTagRegex.ReplaceAllString(text, "")
		next = jsSchemeRegex.ReplaceAllString(next, "")
		next = eventHandlerRegex.ReplaceAllString(next, "")
		if next == text {
			break
		}
		text = next
	}
	return strings.TrimSpace(text)
}

// ValidateBackupFormat is the admission gate for imported backups: the
// document must be a JSON object with an array "tickets", an array
// "historico" and an object "config" carrying "quantidadeNumeros".
func ValidateBackupFormat(doc []byte) bool {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(doc, &root); err != nil {
		return false
	}

	if !isJSONArray(root["tickets"]) || !isJSONArray(root["historico"]) {
		return false
	}

	rawConfig, ok := root["config"]
	if !ok || firstByte(rawConfig) != '{' {
		return false
	}
	var config map[string]json.RawMessage
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return false
	}
	_, ok = config["quantidadeNumeros"]
	return ok
}

func isJSONArray(raw json.RawMessage) bool {
	return firstByte(raw) == '['
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
