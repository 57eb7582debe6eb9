// Package locale loads the embedded translations and renders the localized
// strings used by the desktop window and the HTTP API.
package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const localeDir = "locales"

// Translator resolves translation keys for the active language.
type Translator struct {
	bundle    *goi18n.Bundle
	languages []string
	matcher   language.Matcher

	mu        sync.RWMutex
	lang      string
	localizer *goi18n.Localizer
}

// New loads every embedded locale and activates lang (falling back to the
// default language when it is not available).
func New(lang string) *Translator {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{bundle: bundle}

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	var tags []language.Tag
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		code := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		tag, err := language.Parse(code)
		if code == "" || err != nil {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
			config.LogKeyFile, name,
		)

		t.languages = append(t.languages, code)
		tags = append(tags, tag)
	}

	// The bundle's default language is always matchable.
	if len(tags) == 0 {
		tags = []language.Tag{language.English}
	}
	t.matcher = language.NewMatcher(tags)

	t.SetLanguage(lang)
	return t
}

// Languages lists the loaded language codes.
func (t *Translator) Languages() []string {
	out := make([]string, len(t.languages))
	copy(out, t.languages)
	return out
}

// Language returns the active language code.
func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// SetLanguage switches the active language. Unknown codes select the default.
func (t *Translator) SetLanguage(lang string) {
	if !t.has(lang) {
		lang = config.DefaultLanguage
	}
	t.mu.Lock()
	t.lang = lang
	t.localizer = goi18n.NewLocalizer(t.bundle, lang)
	t.mu.Unlock()
}

func (t *Translator) has(lang string) bool {
	for _, l := range t.languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Match picks the best loaded language for an Accept-Language header value.
func (t *Translator) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return config.DefaultLanguage
	}
	_, idx, confidence := t.matcher.Match(tags...)
	if confidence == language.No || idx >= len(t.languages) {
		return config.DefaultLanguage
	}
	return t.languages[idx]
}

// For returns a Translator sharing the loaded bundle but bound to lang. The
// receiver's own language is left untouched.
func (t *Translator) For(lang string) *Translator {
	c := &Translator{bundle: t.bundle, languages: t.languages, matcher: t.matcher}
	c.SetLanguage(lang)
	return c
}

// Msg translates key, returning the key itself when no translation exists.
func (t *Translator) Msg(key string) string {
	return t.Template(key, nil)
}

// Template translates key with the given template data.
func (t *Translator) Template(key string, data map[string]any) string {
	t.mu.RLock()
	localizer := t.localizer
	t.mu.RUnlock()

	if localizer == nil {
		return key
	}
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
