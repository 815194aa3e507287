package handlers

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxNameLength caps track names echoed back to the chat.
const maxNameLength = 45

// extractArgument returns everything after the command word, trimmed. With
// enforceDigit the argument must consist of ASCII digits only; otherwise "" is
// returned.
func extractArgument(text string, enforceDigit bool) string {
	text = strings.TrimSpace(text)
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		return ""
	}

	arg := strings.TrimSpace(text[idx:])
	if enforceDigit && !isDigits(arg) {
		return ""
	}
	return arg
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// truncateName shortens s to at most limit characters, never splitting a base
// character from its combining marks.
func truncateName(s string, limit int) string {
	count := 0
	for i := 0; i < len(s); {
		if count == limit {
			return s[:i]
		}
		n := norm.NFC.NextBoundaryInString(s[i:], true)
		if n <= 0 {
			break
		}
		i += n
		count++
	}
	return s
}

// parseCommand extracts the lower-cased command name from text such as
// "/loop@MyBot 3". Commands addressed to another bot are rejected.
func parseCommand(text, botUsername string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}

	word := text[1:]
	if idx := strings.IndexFunc(word, unicode.IsSpace); idx >= 0 {
		word = word[:idx]
	}

	name, target, addressed := strings.Cut(word, "@")
	if addressed && botUsername != "" && !strings.EqualFold(target, botUsername) {
		return "", false
	}
	if name == "" {
		return "", false
	}
	return strings.ToLower(name), true
}
