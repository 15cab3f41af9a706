// Package i18n picks the user's language and translates message codes.
package i18n

import (
	"context"

	"golang.org/x/text/language"
)

// Default is used when nothing better matches.
const Default = "es"

var supported = []language.Tag{language.Spanish, language.English}

var matcher = language.NewMatcher(supported)

var messages = map[string]map[string]string{
	"es": {
		"required":             "Requerido",
		"invalid_email":        "Correo electrónico inválido",
		"must_be_positive":     "Debe ser mayor que cero",
		"must_not_be_negative": "No puede ser negativo",
		"out_of_range":         "Fuera de rango",
		"invalid_choice":       "Opción no válida",
		"not_found":            "No encontrado",
		"bad_request":          "Solicitud inválida",
		"validation_failed":    "Datos inválidos",
	},
	"en": {
		"required":             "Required",
		"invalid_email":        "Invalid email address",
		"must_be_positive":     "Must be greater than zero",
		"must_not_be_negative": "Must not be negative",
		"out_of_range":         "Out of range",
		"invalid_choice":       "Invalid choice",
		"not_found":            "Not found",
		"bad_request":          "Bad request",
		"validation_failed":    "Invalid data",
	},
}

// DetectLanguage matches an Accept-Language header against the supported
// languages.
func DetectLanguage(header string) string {
	if header == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// T translates code into lang, falling back to the default language and
// then to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[Default][code]; ok {
		return s
	}
	return code
}

// TranslateAll translates every value of a field -> code map.
func TranslateAll(lang string, codes map[string]string) map[string]string {
	out := make(map[string]string, len(codes))
	for field, code := range codes {
		out[field] = T(lang, code)
	}
	return out
}

type ctxKey struct{}

// WithLang stores the request language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LangFromContext returns the language stored by WithLang, or Default.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(ctxKey{}).(string); ok && lang != "" {
		return lang
	}
	return Default
}
