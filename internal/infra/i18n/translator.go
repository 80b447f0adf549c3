package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var LocalesFS embed.FS

// Translator maps message keys to reply texts for a single language.
type Translator struct {
	translations map[string]string
}

func NewTranslator(fsys fs.FS, langCode string) (*Translator, error) {
	filePath := path.Join("locales", fmt.Sprintf("%s.yaml", langCode))

	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("read translation file %s: %w", filePath, err)
	}

	var translations map[string]string
	if err := yaml.Unmarshal(data, &translations); err != nil {
		return nil, fmt.Errorf("parse translation file %s: %w", filePath, err)
	}

	return &Translator{translations: translations}, nil
}

// T returns the text for key, formatted with args when given. Unknown keys
// come back verbatim so a missing translation is visible, not silent.
func (t *Translator) T(key string, args ...interface{}) string {
	format, ok := t.translations[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// Bundle holds one Translator per supported language. The bot picks a
// translator per message based on the user's stored lang setting.
type Bundle struct {
	defaultLang string
	translators map[string]*Translator
}

func NewBundle(fsys fs.FS, defaultLang string, langs ...string) (*Bundle, error) {
	b := &Bundle{defaultLang: defaultLang, translators: make(map[string]*Translator, len(langs))}
	for _, lang := range langs {
		tr, err := NewTranslator(fsys, lang)
		if err != nil {
			return nil, err
		}
		b.translators[lang] = tr
	}
	if _, ok := b.translators[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %q has no locale file", defaultLang)
	}
	return b, nil
}

// For returns the translator for lang, falling back to the default language.
func (b *Bundle) For(lang string) *Translator {
	if tr, ok := b.translators[lang]; ok {
		return tr
	}
	return b.translators[b.defaultLang]
}
