// Package i18n translates the error messages returned to clients.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,pt;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":     "Invalid request",
			"error.invalid_path":        "Path escapes the document root",
			"error.empty_body":          "Request body must not be empty",
			"error.payload_too_large":   "Request body is too large",
			"error.internal_error":      "An unexpected error occurred",
			"error.not_found":           "Not found",
			"error.not_implemented":     "Method not implemented",
			"error.save_failed":         "File could not be saved",
			"error.rate_limit_exceeded": "Too many requests, please try again later",
			"error.timeout":             "Request timed out",
			"error.logs_unavailable":    "Access log is temporarily unavailable",

			"success.file_saved": "File saved",
		},
		"pt": {
			"error.invalid_request":     "Requisição inválida",
			"error.invalid_path":        "Caminho fora do diretório raiz",
			"error.empty_body":          "O corpo da requisição não pode ser vazio",
			"error.payload_too_large":   "Corpo da requisição muito grande",
			"error.internal_error":      "Ocorreu um erro inesperado",
			"error.not_found":           "Não encontrado",
			"error.not_implemented":     "Método não implementado",
			"error.save_failed":         "Não foi possível salvar o arquivo",
			"error.rate_limit_exceeded": "Muitas requisições, tente novamente mais tarde",
			"error.timeout":             "Tempo da requisição esgotado",
			"error.logs_unavailable":    "Log de acesso temporariamente indisponível",

			"success.file_saved": "Arquivo salvo",
		},
		"nl": {
			"error.invalid_request":     "Ongeldig verzoek",
			"error.invalid_path":        "Pad valt buiten de hoofdmap",
			"error.empty_body":          "Aanvraag body mag niet leeg zijn",
			"error.payload_too_large":   "Aanvraag body is te groot",
			"error.internal_error":      "Er is een onverwachte fout opgetreden",
			"error.not_found":           "Niet gevonden",
			"error.not_implemented":     "Methode niet geïmplementeerd",
			"error.save_failed":         "Bestand kon niet worden opgeslagen",
			"error.rate_limit_exceeded": "Te veel verzoeken, probeer het later opnieuw",
			"error.timeout":             "Verzoek is verlopen",
			"error.logs_unavailable":    "Toegangslog is tijdelijk niet beschikbaar",

			"success.file_saved": "Bestand opgeslagen",
		},
	}
}
