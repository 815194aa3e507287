// Package i18n provides internationalization support for user-facing messages
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

const (
	// DefaultLanguage is the fallback language when no translation is available
	DefaultLanguage = "en"
	// BerneseGermanMessages is a Swiss Dialect spoken in the Canton of Bern
	BerneseGermanMessages = "ch_be"
)

// supportedTags lists the IETF tags matched against user language codes, in
// the same order as GetSupportedLanguages.
var supportedTags = []language.Tag{
	language.English,
	language.MustParse("gsw-CH"),
}

var matcher = language.NewMatcher(supportedTags)

var languageNames = map[string]string{
	DefaultLanguage:       "English",
	BerneseGermanMessages: "Bärndütsch",
}

// Localizer provides translation functionality
type Localizer struct {
	language string
	messages map[string]string
}

// NewLocalizer creates a new localizer for the specified language
func NewLocalizer(language string) *Localizer {
	return &Localizer{
		language: language,
		messages: getMessages(language),
	}
}

// Language returns the localizer's language code.
func (l *Localizer) Language() string {
	return l.language
}

// T translates a message key, with optional parameters for formatting
func (l *Localizer) T(key string, args ...interface{}) string {
	if message, exists := l.messages[key]; exists {
		if len(args) > 0 {
			return fmt.Sprintf(message, args...)
		}
		return message
	}

	// Fallback to English if key not found in current language
	if l.language != DefaultLanguage {
		if fallbackMessage, exists := getMessages(DefaultLanguage)[key]; exists {
			if len(args) > 0 {
				return fmt.Sprintf(fallbackMessage, args...)
			}
			return fallbackMessage
		}
	}

	// Ultimate fallback: return the key itself
	return key
}

// Manager hands out localizers by language preference.
type Manager struct {
	fallback   string
	mutex      sync.RWMutex
	localizers map[string]*Localizer
}

// NewManager creates a manager whose fallback is the given supported language.
func NewManager(fallback string) *Manager {
	if !IsSupported(fallback) {
		fallback = DefaultLanguage
	}
	return &Manager{
		fallback:   fallback,
		localizers: make(map[string]*Localizer),
	}
}

// For returns the localizer for the first preference that matches a supported
// language. Preferences may be our own codes ("ch_be") or IETF tags ("de-CH").
func (m *Manager) For(preferences ...string) *Localizer {
	return m.get(m.Resolve(preferences...))
}

// Resolve maps language preferences to a supported language code.
func (m *Manager) Resolve(preferences ...string) string {
	for _, pref := range preferences {
		pref = strings.TrimSpace(pref)
		if pref == "" {
			continue
		}
		if IsSupported(pref) {
			return pref
		}
		tag, err := language.Parse(pref)
		if err != nil {
			continue
		}
		_, idx, confidence := matcher.Match(tag)
		if confidence >= language.High {
			return GetSupportedLanguages()[idx]
		}
	}
	return m.fallback
}

func (m *Manager) get(lang string) *Localizer {
	m.mutex.RLock()
	l, ok := m.localizers[lang]
	m.mutex.RUnlock()
	if ok {
		return l
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if l, ok = m.localizers[lang]; ok {
		return l
	}
	l = NewLocalizer(lang)
	m.localizers[lang] = l
	return l
}

// GetSupportedLanguages returns list of supported language codes
func GetSupportedLanguages() []string {
	return []string{DefaultLanguage, BerneseGermanMessages}
}

// DisplayName returns the native name of a supported language, or the code itself.
func DisplayName(lang string) string {
	if name, ok := languageNames[lang]; ok {
		return name
	}
	return lang
}

// IsSupported reports whether lang is one of our language codes.
func IsSupported(lang string) bool {
	for _, supported := range GetSupportedLanguages() {
		if lang == supported {
			return true
		}
	}
	return false
}

// getMessages returns the message map for a given language
func getMessages(language string) map[string]string {
	switch language {
	case DefaultLanguage:
		return englishMessages
	case BerneseGermanMessages:
		return berneseGermanMessages
	default:
		return englishMessages // Default to English
	}
}
