package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var localeFiles = []string{
	"locales/active.es.json",
	"locales/active.en.json",
}

// DefaultLanguage is the storefront's own language.
var DefaultLanguage = language.Spanish

type Translator struct {
	bundle *goi18n.Bundle
}

func New() (*Translator, error) {
	bundle := goi18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, f := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return &Translator{bundle: bundle}, nil
}

// MustNew is New for package-level test fixtures.
func MustNew() *Translator {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}

// Localizer picks the best match among langs (tags or Accept-Language values).
func (t *Translator) Localizer(langs ...string) *Localizer {
	return &Localizer{l: goi18n.NewLocalizer(t.bundle, langs...)}
}

type Localizer struct {
	l *goi18n.Localizer
}

// T renders message id. Unknown ids come back verbatim.
func (l *Localizer) T(id string, data map[string]any) string {
	msg, err := l.l.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
