package ui

import (
	"errors"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/insight"
	"github.com/tartampluch/go-agecalc/internal/session"
)

// calculatorView keeps the widgets that render() updates.
type calculatorView struct {
	dateEntry *FilteredEntry
	btnCalc   *widget.Button
	btnReset  *widget.Button
	btnExport *widget.Button

	results     *fyne.Container
	years       *widget.Label
	months      *widget.Label
	days        *widget.Label
	totalDays   *widget.Label
	nextBirth   *widget.Label
	zodiac      *widget.Label
	insightCard *widget.Card
	progress    *widget.ProgressBarInfinite
	status      *widget.Label
	factTitle   *widget.Label
	fact        *widget.Label
	quoteTitle  *widget.Label
	quote       *widget.Label
	btnRetry    *widget.Button
}

// ShowMainWindow opens (or refreshes) the calculator window.
func (app *AgeCalcApp) ShowMainWindow() {
	if app.Window == nil {
		app.Window = app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
		app.Window.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
		app.Window.SetMaster()

		// Fetches complete on their own goroutine.
		app.Session.OnChange(func(session.Snapshot) {
			fyne.Do(app.render)
		})
	}
	app.refreshMainWindow()
	app.Window.Show()
}

// refreshMainWindow rebuilds the content in the current language, keeping
// whatever the user typed.
func (app *AgeCalcApp) refreshMainWindow() {
	if app.Window == nil {
		return
	}
	typed := ""
	if app.view != nil {
		typed = app.view.dateEntry.Text
	}

	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetContent(app.buildMainContent())
	app.view.dateEntry.SetText(typed)
	app.render()
}

func (app *AgeCalcApp) buildMainContent() fyne.CanvasObject {
	v := &calculatorView{}
	app.view = v

	title := widget.NewLabelWithStyle(app.GetMsg(config.TKeyWinTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	title.SizeName = theme.SizeNameHeadingText
	subtitle := widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblSubtitle), fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	// --- Input ---
	v.dateEntry = NewDateEntry()
	v.dateEntry.OnSubmitted = func(string) { app.onCalculate() }

	v.btnCalc = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCalculate), theme.ConfirmIcon(), app.onCalculate)
	v.btnCalc.Importance = widget.HighImportance
	v.btnReset = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnReset), theme.ContentClearIcon(), app.onReset)

	form := widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyLblBirthDate), v.dateEntry))
	form.Items[0].HintText = app.GetMsg(config.TKeyHelpBirth)
	input := container.NewVBox(form, container.NewGridWithColumns(config.LayoutColumnsDouble, v.btnCalc, v.btnReset))

	// --- Results ---
	stat := func(titleKey, subKey string) (*widget.Card, *widget.Label) {
		value := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		value.SizeName = theme.SizeNameSubHeadingText
		sub := ""
		if subKey != "" {
			sub = app.GetMsg(subKey)
		}
		return widget.NewCard(app.GetMsg(titleKey), sub, value), value
	}

	cardYears, years := stat(config.TKeyStatYears, config.TKeyStatYearsSub)
	cardMonths, months := stat(config.TKeyStatMonths, config.TKeyStatMonthsSub)
	cardDays, days := stat(config.TKeyStatDays, config.TKeyStatDaysSub)
	cardTotal, total := stat(config.TKeyStatTotal, "")
	cardNext, next := stat(config.TKeyStatNext, "")
	cardZodiac, zodiac := stat(config.TKeyStatZodiac, "")
	v.years, v.months, v.days = years, months, days
	v.totalDays, v.nextBirth, v.zodiac = total, next, zodiac

	v.results = container.NewVBox(
		container.NewGridWithColumns(config.LayoutColumnsTriple, cardYears, cardMonths, cardDays),
		container.NewGridWithColumns(config.LayoutColumnsTriple, cardTotal, cardNext, cardZodiac),
	)

	// --- Insight ---
	v.progress = widget.NewProgressBarInfinite()
	v.status = widget.NewLabel("")
	v.status.Wrapping = fyne.TextWrapWord
	v.factTitle = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.fact = widget.NewLabel("")
	v.fact.Wrapping = fyne.TextWrapWord
	v.quoteTitle = widget.NewLabelWithStyle(app.GetMsg(config.TKeyInsightQuote), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.quote = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
	v.quote.Wrapping = fyne.TextWrapWord
	v.btnRetry = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnRetry), theme.ViewRefreshIcon(), app.onRetry)

	v.insightCard = widget.NewCard(app.GetMsg(config.TKeyInsightTitle), "", container.NewVBox(
		v.progress, v.status, v.factTitle, v.fact, v.quoteTitle, v.quote, v.btnRetry,
	))

	// --- Toolbar ---
	btnContacts := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnContacts), theme.AccountIcon(), app.ShowContactsWindow)
	btnSettings := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)
	v.btnExport = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExportICS), theme.DocumentSaveIcon(), app.onExport)

	footer := widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblFooter), fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	footer.Wrapping = fyne.TextWrapWord
	footer.SizeName = theme.SizeNameCaptionText

	body := container.NewVBox(title, subtitle, input, v.results, v.insightCard)
	toolbar := container.NewHBox(btnContacts, btnSettings, layout.NewSpacer(), v.btnExport)

	return container.NewBorder(nil, container.NewVBox(widget.NewSeparator(), toolbar, footer), nil, nil,
		container.NewVScroll(container.NewPadded(body)))
}

// render projects the session state onto the widgets. Must run on the UI goroutine.
func (app *AgeCalcApp) render() {
	v := app.view
	if v == nil {
		return
	}
	snap := app.Session.Snapshot()

	if !snap.HasResult {
		v.results.Hide()
		v.btnExport.Disable()
	} else {
		r := snap.Result
		v.years.SetText(strconv.Itoa(r.Years))
		v.months.SetText(strconv.Itoa(r.Months))
		v.days.SetText(strconv.Itoa(r.Days))
		v.totalDays.SetText(app.FormatNumber(r.TotalDays))
		if r.NextBirthdayDays == 0 {
			v.nextBirth.SetText(app.GetMsg(config.TKeyStatNextToday))
		} else {
			v.nextBirth.SetText(app.GetMsgData(config.TKeyStatNextValue, map[string]any{"Count": r.NextBirthdayDays}))
		}
		v.zodiac.SetText(app.ZodiacLabel(r.Zodiac))
		v.results.Show()
		v.btnExport.Enable()
	}

	app.renderInsight(snap)
}

func (app *AgeCalcApp) renderInsight(snap session.Snapshot) {
	v := app.view

	showText := func(visible bool) {
		for _, w := range []fyne.CanvasObject{v.factTitle, v.fact, v.quoteTitle, v.quote} {
			if visible {
				w.Show()
			} else {
				w.Hide()
			}
		}
	}

	switch snap.State {
	case session.Idle:
		v.progress.Stop()
		v.insightCard.Hide()
		return

	case session.Loading:
		v.progress.Show()
		v.progress.Start()
		v.status.SetText(app.GetMsg(config.TKeyInsightLoading))
		v.status.Show()
		showText(false)
		v.btnRetry.Hide()

	case session.Success:
		v.progress.Stop()
		v.progress.Hide()
		v.status.Hide()
		v.factTitle.SetText(app.GetMsgData(config.TKeyInsightFact, map[string]any{"Year": snap.Birth.Year}))
		v.fact.SetText(snap.Insights.HistoricalFact)
		v.quote.SetText(snap.Insights.InspirationalQuote)
		showText(true)
		v.btnRetry.Hide()

	case session.Error:
		v.progress.Stop()
		v.progress.Hide()
		if errors.Is(snap.Err, insight.ErrMissingCredential) {
			v.status.SetText(app.GetMsg(config.TKeyInsightNoKey))
		} else {
			v.status.SetText(app.GetMsg(config.TKeyInsightError))
		}
		v.status.Show()
		showText(false)
		v.btnRetry.Show()
	}
	v.insightCard.Show()
}

func (app *AgeCalcApp) onCalculate() {
	if _, err := app.Session.Calculate(app.view.dateEntry.Text); err != nil {
		dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrInvalidDate)), app.Window)
		return
	}
	app.publishCalendar()
	app.render()
}

func (app *AgeCalcApp) onRetry() {
	if err := app.Session.Retry(); err != nil {
		slog.Debug(err.Error(), config.LogKeyComponent, config.CompUI)
	}
	app.render()
}

func (app *AgeCalcApp) onReset() {
	app.Session.Reset()
	app.view.dateEntry.SetText("")
	app.render()
}

func (app *AgeCalcApp) onExport() {
	d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if uc == nil {
			return
		}
		defer func() { _ = uc.Close() }()

		if err := app.ExportCalendar(uc); err != nil {
			slog.Error(config.ErrExportWrite,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyFile, uc.URI().String(),
				config.LogKeyError, err)
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrExport)), app.Window)
			return
		}
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifExported)))
	}, app.Window)

	d.SetFileName(config.ICSFileName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtICS}))
	d.Show()
}
