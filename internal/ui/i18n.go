package ui

import (
	"cmp"
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n loads every embedded locale and derives the language list from
// the file names (active.<lang>.json).
func (app *AgeCalcApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		langCode, ok := strings.CutPrefix(name, "active.")
		if ok {
			langCode, ok = strings.CutSuffix(langCode, ".json")
		}
		if !ok {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detected = append(detected, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	app.SupportedLanguages = detected
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// Language is the preferred UI language, falling back to the environment.
func (app *AgeCalcApp) Language() string {
	return app.Preferences.StringWithFallback(config.PrefLanguage, cmp.Or(app.Env.Lang, config.DefaultLanguage))
}

// UpdateLocalizer refreshes the translator and number printer after a
// language change.
func (app *AgeCalcApp) UpdateLocalizer() {
	lang := app.Language()
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
	app.printer = message.NewPrinter(language.Make(lang))
}

// GetMsg translates a key, returning the key itself when it is missing.
func (app *AgeCalcApp) GetMsg(key string) string {
	return app.localize(&i18n.LocalizeConfig{MessageID: key})
}

// GetMsgData translates a templated key. A "Count" entry selects the plural form.
func (app *AgeCalcApp) GetMsgData(key string, data map[string]any) string {
	lc := &i18n.LocalizeConfig{MessageID: key, TemplateData: data}
	if n, ok := data["Count"]; ok {
		lc.PluralCount = n
	}
	return app.localize(lc)
}

func (app *AgeCalcApp) localize(lc *i18n.LocalizeConfig) string {
	if app.Localizer == nil {
		return lc.MessageID
	}
	msg, err := app.Localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

// ZodiacLabel returns the translated sign name.
func (app *AgeCalcApp) ZodiacLabel(z engine.Zodiac) string {
	if z == "" {
		return config.AgeUnknown
	}
	key := config.TKeyZodiacPrefix + strings.ToLower(string(z))
	if msg := app.GetMsg(key); msg != key {
		return msg
	}
	return string(z)
}

// FormatNumber groups digits the way the current language does (12,571 / 12.571).
func (app *AgeCalcApp) FormatNumber(n int) string {
	if app.printer == nil {
		return message.NewPrinter(language.English).Sprintf("%d", n)
	}
	return app.printer.Sprintf("%d", n)
}
