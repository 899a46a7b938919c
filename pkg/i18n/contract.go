package i18n

// Params carries dynamic values used to interpolate a localized message template.
type Params map[string]interface{}

// Translator resolves a message key into a localized text.
type Translator interface {
	T(key string, args ...interface{}) string
}
