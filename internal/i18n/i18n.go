package i18n

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// DefaultLanguage is the language of the built-in form texts.
const DefaultLanguage = "zh-TW"

//go:embed locales/active.*.toml
var locales embed.FS

// Translations holds every message catalog the service knows about.
type Translations struct {
	bundle   *i18n.Bundle
	fallback string
	matcher  language.Matcher
	tags     []language.Tag
}

// NewTranslations loads the embedded catalogs. defaultLang is used when a
// request names no supported language.
func NewTranslations(defaultLang string) (*Translations, error) {
	if strings.TrimSpace(defaultLang) == "" {
		defaultLang = DefaultLanguage
	}
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("i18n: default language %q: %w", defaultLang, err)
	}

	bundle := i18n.NewBundle(language.MustParse(DefaultLanguage))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read embedded locales: %w", err)
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(locales, "locales/"+entry.Name()); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", entry.Name(), err)
		}
	}

	t := &Translations{bundle: bundle, fallback: tag.String()}
	if !t.supports(tag) {
		return nil, fmt.Errorf("i18n: language '%s' not supported", defaultLang)
	}
	t.refresh()
	return t, nil
}

// LoadDir adds or overrides messages from every active.*.toml file in dir.
func (t *Translations) LoadDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(dir, "active.*.toml"))
	if err != nil {
		return fmt.Errorf("i18n: reading locales: %w", err)
	}
	for _, file := range files {
		if _, err := t.bundle.LoadMessageFile(file); err != nil {
			return fmt.Errorf("i18n: loading locale file %s: %w", file, err)
		}
	}
	t.refresh()
	return nil
}

// Languages lists the loaded languages, default first.
func (t *Translations) Languages() []string {
	out := make([]string, 0, len(t.tags))
	for _, tag := range t.tags {
		out = append(out, tag.String())
	}
	return out
}

// Match picks the supported language that best fits the given
// Accept-Language values or language tags.
func (t *Translations) Match(accept ...string) string {
	var wanted []language.Tag
	for _, value := range accept {
		tags, _, err := language.ParseAcceptLanguage(value)
		if err != nil {
			continue
		}
		wanted = append(wanted, tags...)
	}
	if len(wanted) == 0 {
		return t.fallback
	}
	_, index, confidence := t.matcher.Match(wanted...)
	if confidence == language.No {
		return t.fallback
	}
	return t.tags[index].String()
}

// For returns a localizer bound to the best match for accept.
func (t *Translations) For(accept ...string) *Localizer {
	lang := t.Match(accept...)
	return &Localizer{
		lang:     lang,
		localize: i18n.NewLocalizer(t.bundle, lang, t.fallback),
	}
}

// Translate resolves key for locale. The first map argument, if any, is used
// as template data. It returns an error when no catalog has the key.
func (t *Translations) Translate(locale, key string, args ...any) (string, error) {
	return t.For(locale).lookup(key, templateData(args))
}

func (t *Translations) supports(tag language.Tag) bool {
	for _, known := range t.bundle.LanguageTags() {
		if known == tag {
			return true
		}
	}
	return false
}

func (t *Translations) refresh() {
	fallback := language.MustParse(t.fallback)
	tags := []language.Tag{fallback}
	for _, tag := range t.bundle.LanguageTags() {
		if tag != fallback {
			tags = append(tags, tag)
		}
	}
	t.tags = tags
	t.matcher = language.NewMatcher(tags)
}

// Localizer translates messages for one negotiated language.
type Localizer struct {
	lang     string
	localize *i18n.Localizer
}

// Lang is the negotiated language tag.
func (l *Localizer) Lang() string {
	return l.lang
}

// Translate returns the message for id rendered with data, or fallback when
// no catalog has it.
func (l *Localizer) Translate(id string, data map[string]any, fallback string) string {
	msg, err := l.lookup(id, data)
	if err != nil {
		return fallback
	}
	return msg
}

func (l *Localizer) lookup(id string, data map[string]any) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", errors.New("i18n: empty message id")
	}
	msg, err := l.localize.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return "", fmt.Errorf("i18n: %s: %w", id, err)
	}
	return msg, nil
}

func templateData(args []any) map[string]any {
	for _, arg := range args {
		values, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		data := make(map[string]any, len(values))
		for k, v := range values {
			if k == "default" {
				continue
			}
			data[k] = v
		}
		return data
	}
	return nil
}
