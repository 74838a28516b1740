// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

const DefaultLang = "en"

//go:embed locales/*.json
var localeFS embed.FS

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var (
	instance *I18n
	once     sync.Once
	initErr  error
)

// Initialize loads the embedded catalogues. It is safe to call repeatedly;
// T calls it on first use.
func Initialize() error {
	once.Do(func() {
		instance = &I18n{
			translations: make(map[string]map[string]string),
			defaultLang:  DefaultLang,
		}
		initErr = instance.LoadTranslations()
	})
	return initErr
}

func (i *I18n) LoadTranslations() error {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("failed to list locales: %w", err)
	}

	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")

		data, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", entry.Name(), err)
		}

		i.mu.Lock()
		i.translations[lang] = translations
		i.mu.Unlock()
	}

	return nil
}

// Lookup returns the translation for key and whether one exists in lang or
// the default language.
func (i *I18n) Lookup(lang, key string, args ...interface{}) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	for _, candidate := range []string{lang, i.defaultLang} {
		translations, exists := i.translations[candidate]
		if !exists {
			continue
		}
		if text, exists := translations[key]; exists {
			if len(args) > 0 {
				return fmt.Sprintf(text, args...), true
			}
			return text, true
		}
	}

	return "", false
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	if text, ok := i.Lookup(lang, key, args...); ok {
		return text
	}
	// Return key if no translation found
	return key
}

// Global functions
func T(lang, key string, args ...interface{}) string {
	if Initialize() != nil {
		return key
	}
	return instance.T(lang, key, args...)
}

func Lookup(lang, key string, args ...interface{}) (string, bool) {
	if Initialize() != nil {
		return "", false
	}
	return instance.Lookup(lang, key, args...)
}

func IsSupported(lang string) bool {
	if Initialize() != nil {
		return lang == DefaultLang
	}

	instance.mu.RLock()
	defer instance.mu.RUnlock()
	_, ok := instance.translations[lang]
	return ok
}

func GetSupportedLanguages() []string {
	if Initialize() != nil {
		return []string{DefaultLang}
	}

	instance.mu.RLock()
	defer instance.mu.RUnlock()

	langs := make([]string, 0, len(instance.translations))
	for lang := range instance.translations {
		langs = append(langs, lang)
	}
	return langs
}
