package ui

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
	"github.com/tartampluch/go-agecalc/internal/insight"
	"github.com/tartampluch/go-agecalc/internal/server"
	"github.com/tartampluch/go-agecalc/internal/session"
	"github.com/zalando/go-keyring"
	"golang.org/x/text/message"
)

// FetcherFactory builds the insight backend from the merged settings.
type FetcherFactory func(ctx context.Context, opts insight.Options) (insight.Fetcher, error)

// AgeCalcApp holds the windows, preferences and services of the desktop app.
type AgeCalcApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context
	Env         config.Env

	Calc    *engine.Calculator
	Server  *server.Server
	Session *session.Session
	Fetcher engine.VCardFetcher // address book download

	NewInsightFetcher FetcherFactory

	SupportedLanguages []string
	printer            *message.Printer

	view           *calculatorView
	settingsWindow fyne.Window

	// Contacts State
	ContactsMut    sync.RWMutex
	Contacts       []engine.ContactAge
	contactsWindow fyne.Window
}

// NewAgeCalcApp wires the services into a new application. srv may be nil
// when no local API is wanted.
func NewAgeCalcApp(a fyne.App, ctx context.Context, env config.Env, calc *engine.Calculator, srv *server.Server, sess *session.Session) *AgeCalcApp {
	return &AgeCalcApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Env:                env,
		Calc:               calc,
		Server:             srv,
		Session:            sess,
		Fetcher:            engine.NewHTTPFetcher(),
		NewInsightFetcher:  insight.New,
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run starts the local server, opens the calculator and blocks in the event loop.
func (app *AgeCalcApp) Run() {
	app.SetupI18n()
	app.ApplyInsightSettings()

	if app.Server != nil {
		go func() {
			if err := app.Server.Start(app.Ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)

				app.App.SendNotification(fyne.NewNotification(
					config.TitleStartupError,
					fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
			}
		}()
	}

	go func() {
		<-app.Ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(app.App.Quit)
	}()

	app.ShowMainWindow()
	app.App.Run()
}

// InsightOptions merges preferences, environment and keyring into fetcher
// options. A key from the environment wins over the stored one.
func (app *AgeCalcApp) InsightOptions() insight.Options {
	provider := app.Preferences.StringWithFallback(config.PrefProvider, cmp.Or(app.Env.Provider, config.DefaultProvider))

	env := app.Env
	env.Provider = provider

	opts := insight.Options{
		Provider: provider,
		APIKey:   env.APIKey(),
		Model:    app.Preferences.StringWithFallback(config.PrefModel, app.Env.Model),
		BaseURL:  app.Preferences.StringWithFallback(config.PrefBaseURL, app.Env.BaseURL),
		Lang:     app.Language(),
	}

	if opts.APIKey == "" {
		if key, err := keyring.Get(config.KeyringService, apiKeyAccount(provider)); err == nil {
			opts.APIKey = key
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyProvider, provider,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return opts
}

// ApplyInsightSettings rebuilds the fetcher and hands it to the session and
// the server. On failure both fall back to no fetcher, which surfaces as a
// missing credential.
func (app *AgeCalcApp) ApplyInsightSettings() {
	opts := app.InsightOptions()

	f, err := app.NewInsightFetcher(app.Ctx, opts)
	if err != nil {
		slog.Error(config.ErrClientInit,
			config.LogKeyProvider, opts.Provider,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
		f = nil
	}

	app.Session.SetFetcher(f)
	if app.Server != nil {
		app.Server.SetFetcher(f)
	}
}

// apiKeyAccount is the keyring account holding the key for a provider.
func apiKeyAccount(provider string) string {
	return config.KeyringAPIKeyUser + "-" + provider
}

// loadSourceConfig assembles the contacts source from preferences and keyring.
func (app *AgeCalcApp) loadSourceConfig() engine.SourceConfig {
	cfg := engine.SourceConfig{
		Mode:      app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeWeb),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return cfg
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *AgeCalcApp) buildSummaryFormatter() func(age int) string {
	return func(age int) string {
		if app.Localizer == nil {
			slog.Debug(config.ErrLocNotInit, config.LogKeyComponent, config.CompUI)
			return fmt.Sprintf(config.FallbackSummaryAge, age)
		}
		msg := app.GetMsgData(config.TKeyEvtSummaryAge, map[string]any{"Age": age})
		if msg == config.TKeyEvtSummaryAge || msg == "" {
			return fmt.Sprintf(config.FallbackSummaryAge, age)
		}
		return msg
	}
}

// CalendarData renders the birthday calendar for the current result.
func (app *AgeCalcApp) CalendarData() ([]byte, error) {
	snap := app.Session.Snapshot()
	if !snap.HasResult {
		return nil, session.ErrNoResult
	}

	exp := engine.NewCalendarExporter()
	exp.FormatSummary = app.buildSummaryFormatter()
	return exp.Export(snap.Birth, app.Calc.Today(), app.Calc.Clock.Now())
}

// publishCalendar refreshes the document served on /calendar.ics.
func (app *AgeCalcApp) publishCalendar() {
	if app.Server == nil {
		return
	}
	data, err := app.CalendarData()
	if err != nil {
		slog.Warn(config.ErrICalEncode, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
		return
	}
	app.Server.UpdateCalendar(data)
}

// ExportCalendar writes the birthday calendar to w.
func (app *AgeCalcApp) ExportCalendar(w io.Writer) error {
	start := time.Now()
	data, err := app.CalendarData()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}
	slog.Info(config.MsgExported,
		config.LogKeyComponent, config.CompUI,
		config.LogKeySizeBytes, len(data),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return nil
}
