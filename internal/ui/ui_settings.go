package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect     *widget.Select
	entryPort      *FilteredEntry
	providerSelect *widget.Select
	modelEntry     *widget.Entry
	baseURLEntry   *widget.Entry
	apiKeyEntry    *widget.Entry
	modeSelect     *widget.Select
	urlEntry       *widget.Entry
	userEntry      *widget.Entry
	passEntry      *widget.Entry
	pathEntry      *widget.Entry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *AgeCalcApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// --- General ---
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLang)
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemPort))

	// --- Insight ---
	itemModel := widget.NewFormItem(app.GetMsg(config.TKeyLblModel), sw.modelEntry)
	itemModel.HintText = app.GetMsg(config.TKeyHelpModel)
	itemKey := widget.NewFormItem(app.GetMsg(config.TKeyLblAPIKey), sw.apiKeyEntry)
	itemKey.HintText = app.GetMsg(config.TKeyHelpAPIKey)
	insightCard := widget.NewCard(app.GetMsg(config.TKeyLblInsight), "", widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblProvider), sw.providerSelect),
		itemModel,
		widget.NewFormItem(app.GetMsg(config.TKeyLblBaseURL), sw.baseURLEntry),
		itemKey,
	))

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	// --- Actions ---
	saveAction := func() {
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf("%s %s", config.AppName, config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		insightCard,
		sourceCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates the inputs pre-filled from preferences and keyring.
func (app *AgeCalcApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Language())

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, app.Env.Port))
	sw.entryPort.Validator = app.validatePort

	opts := app.InsightOptions()
	sw.providerSelect = widget.NewSelect(config.SupportedProviders, nil)
	sw.providerSelect.SetSelected(opts.Provider)

	sw.modelEntry = widget.NewEntry()
	sw.modelEntry.SetText(opts.Model)
	sw.modelEntry.PlaceHolder = config.DefaultGeminiModel

	sw.baseURLEntry = widget.NewEntry()
	sw.baseURLEntry.SetText(opts.BaseURL)

	sw.apiKeyEntry = widget.NewPasswordEntry()
	sw.apiKeyEntry.SetText(opts.APIKey)

	sw.providerSelect.OnChanged = func(p string) {
		sw.modelEntry.PlaceHolder = config.DefaultGeminiModel
		if p == config.ProviderOpenAI {
			sw.modelEntry.PlaceHolder = config.DefaultOpenAIModel
		}
		sw.modelEntry.Refresh()
	}

	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeCardDAV),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	return sw
}

// validatePort reports a localized error for anything outside 1-65535.
func (app *AgeCalcApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// buildSourceCard constructs the contacts source selection UI.
func (app *AgeCalcApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	webForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	applyVisibility := func(mode string) {
		if mode == app.GetMsg(config.TKeyModeLocal) {
			webForm.Hide()
			localForm.Show()
		} else {
			webForm.Show()
			localForm.Hide()
		}
	}

	if app.Preferences.String(config.PrefSourceMode) == config.SourceModeLocal {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeCardDAV))
	}
	applyVisibility(sw.modeSelect.Selected)

	sw.modeSelect.OnChanged = func(mode string) {
		applyVisibility(mode)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// saveSettings persists the form, stores secrets in the keyring and applies
// the new language and insight backend immediately.
func (app *AgeCalcApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSave, config.LogKeyComponent, config.CompUISet)

	modeMap := map[string]string{
		app.GetMsg(config.TKeyModeCardDAV): config.SourceModeWeb,
		app.GetMsg(config.TKeyModeLocal):   config.SourceModeLocal,
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	provider := sw.providerSelect.Selected
	app.Preferences.SetString(config.PrefProvider, provider)
	app.Preferences.SetString(config.PrefModel, sw.modelEntry.Text)
	app.Preferences.SetString(config.PrefBaseURL, sw.baseURLEntry.Text)

	if key := sw.apiKeyEntry.Text; key != "" {
		if err := keyring.Set(config.KeyringService, apiKeyAccount(provider), key); err != nil {
			slog.Error(config.ErrKeyringSave,
				config.LogKeyProvider, provider,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUISet)
		}
	}

	app.Preferences.SetString(config.PrefSourceMode, modeMap[sw.modeSelect.Selected])
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.ErrKeyringSave,
				config.LogKeyUser, sw.userEntry.Text,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUISet)
		}
	}

	app.UpdateLocalizer()
	app.ApplyInsightSettings()
	app.refreshMainWindow()
}
