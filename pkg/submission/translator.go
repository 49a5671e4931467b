package submission

// Translator resolves a message id into user-facing text. Implementations
// return fallback when the id is unknown.
type Translator interface {
	Translate(id string, data map[string]any, fallback string) string
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(id string, data map[string]any, fallback string) string

// Translate delegates to the function.
func (fn TranslatorFunc) Translate(id string, data map[string]any, fallback string) string {
	return fn(id, data, fallback)
}

type defaultTranslator struct{}

func (defaultTranslator) Translate(_ string, _ map[string]any, fallback string) string {
	return fallback
}
