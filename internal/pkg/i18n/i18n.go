// internal/pkg/i18n/i18n.go
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

const (
	French  = "fr"
	Arabic  = "ar"
	Default = French
)

var matcher = language.NewMatcher([]language.Tag{language.French, language.Arabic})

// Supported reports whether code is a UI language
func Supported(code string) bool {
	_, ok := catalog[code]
	return ok
}

// Normalize returns code when supported, else the default language
func Normalize(code string) string {
	if Supported(code) {
		return code
	}
	return Default
}

// FromAcceptLanguage picks fr or ar from an Accept-Language header
func FromAcceptLanguage(header string) string {
	if header == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	if index == 1 {
		return Arabic
	}
	return French
}

// Dir is the text direction for lang
func Dir(lang string) string {
	if lang == Arabic {
		return "rtl"
	}
	return "ltr"
}

// T translates key, falling back to French then to the key itself
func T(lang, key string) string {
	if msg, ok := catalog[lang][key]; ok {
		return msg
	}
	if msg, ok := catalog[Default][key]; ok {
		return msg
	}
	return key
}

// Tf is T with fmt verbs
func Tf(lang, key string, args ...interface{}) string {
	return fmt.Sprintf(T(lang, key), args...)
}

// Messages returns the whole table for lang, for templates
func Messages(lang string) map[string]string {
	return catalog[Normalize(lang)]
}
