package commands

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-assistant/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Localizer translates message keys for user-facing REPL output.
type Localizer struct {
	bundle *i18n.Bundle
	loc    *i18n.Localizer

	// SupportedLanguages lists the locale codes detected at load time.
	SupportedLanguages []string
}

// NewLocalizer loads the embedded translation files and selects lang.
// Unknown languages fall back to English message by message.
func NewLocalizer(lang string) *Localizer {
	l := &Localizer{
		bundle: i18n.NewBundle(language.English),
	}
	l.bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return l
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := l.bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		l.SupportedLanguages = append(l.SupportedLanguages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	l.SetLanguage(lang)
	return l
}

// SetLanguage switches the active translation language.
func (l *Localizer) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	l.loc = i18n.NewLocalizer(l.bundle, lang)
}

// Msg translates a key, falling back to the key itself when missing.
func (l *Localizer) Msg(key string) string {
	return l.MsgData(key, nil)
}

// MsgData translates a key with template data.
func (l *Localizer) MsgData(key string, data map[string]any) string {
	if l.loc == nil {
		return key
	}
	msg, err := l.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
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
