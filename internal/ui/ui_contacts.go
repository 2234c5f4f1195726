package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
)

// LoadContacts imports the configured address book and replaces app.Contacts.
// A partial import still replaces the list and returns engine.ErrPartialImport.
func (app *AgeCalcApp) LoadContacts(ctx context.Context) error {
	importer := &engine.ContactImporter{Clock: app.Calc.Clock, Fetcher: app.Fetcher}

	contacts, err := importer.Import(ctx, app.loadSourceConfig())
	if err != nil && !errors.Is(err, engine.ErrPartialImport) {
		return err
	}

	app.ContactsMut.Lock()
	app.Contacts = contacts
	app.ContactsMut.Unlock()
	return err
}

// snapshotContacts returns a copy safe to sort on the UI goroutine.
func (app *AgeCalcApp) snapshotContacts() []engine.ContactAge {
	app.ContactsMut.RLock()
	defer app.ContactsMut.RUnlock()
	return slices.Clone(app.Contacts)
}

// sortContacts orders the list by one table column. Contacts without a known
// birth year always sink to the bottom of the age column.
func sortContacts(list []engine.ContactAge, col int, asc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]

		if col == config.ColIDAge && a.YearKnown != b.YearKnown {
			return a.YearKnown
		}

		var less, equal bool
		switch col {
		case config.ColIDName:
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			less, equal = an < bn, an == bn
		case config.ColIDAge:
			less, equal = a.AgeNext < b.AgeNext, a.AgeNext == b.AgeNext
		case config.ColIDZodiac:
			ai, bi := slices.Index(engine.Signs, a.Zodiac), slices.Index(engine.Signs, b.Zodiac)
			less, equal = ai < bi, ai == bi
		default: // config.ColIDDate
			less, equal = a.NextBirthdayDays < b.NextBirthdayDays, a.NextBirthdayDays == b.NextBirthdayDays
		}

		if equal {
			return a.Name < b.Name
		}
		if !asc {
			return !less
		}
		return less
	})
}

// contactCell renders one table cell.
func (app *AgeCalcApp) contactCell(c engine.ContactAge, col int) string {
	switch col {
	case config.ColIDName:
		return c.Name
	case config.ColIDDate:
		format := app.GetMsg(config.TKeyFormatDate)
		if format == config.TKeyFormatDate {
			format = config.DateFormatDisplay
		}
		return c.NextBirthday.Time(time.Local).Format(format)
	case config.ColIDAge:
		if !c.YearKnown {
			return config.AgeUnknown
		}
		if c.NextBirthdayDays == 0 {
			return fmt.Sprint(c.AgeNext)
		}
		return fmt.Sprintf(config.AgeArrow, c.Age.Years, c.AgeNext)
	case config.ColIDZodiac:
		return app.ZodiacLabel(c.Zodiac)
	}
	return ""
}

// pickContact loads a contact's birth date into the calculator.
func (app *AgeCalcApp) pickContact(c engine.ContactAge) {
	if !c.YearKnown || app.view == nil {
		return
	}
	slog.Info(config.LogMsgPicked,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyName, c.Name)

	app.view.dateEntry.SetText(c.Birth.String())
	app.onCalculate()
	if app.Window != nil {
		app.Window.RequestFocus()
	}
}

// ShowContactsWindow lists imported birthdays, soonest first. Headers sort
// the table and selecting a row with a known year loads it into the calculator.
func (app *AgeCalcApp) ShowContactsWindow() {
	if app.contactsWindow != nil {
		app.contactsWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinContacts))
	app.contactsWindow = w
	w.Resize(fyne.NewSize(config.ContactsWinWidth, config.ContactsWinHeight))

	displayContacts := app.snapshotContacts()

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(displayContacts))

	currentSortCol := config.ColIDDate
	sortAsc := true

	performSort := func() {
		sortContacts(displayContacts, currentSortCol, sortAsc)
		slog.Debug(config.LogMsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}
	performSort()

	table := widget.NewTable(
		func() (int, int) {
			return len(displayContacts), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			if id.Row >= len(displayContacts) {
				return
			}
			o.(*widget.Label).SetText(app.contactCell(displayContacts[id.Row], id.Col))
		},
	)

	var refreshTable func()

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("", func() {})
	}
	headerKeys := [config.ColCount]string{
		config.ColIDName:   config.TKeyColName,
		config.ColIDDate:   config.TKeyColDate,
		config.ColIDAge:    config.TKeyColAge,
		config.ColIDZodiac: config.TKeyColZodiac,
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)
		if id.Col < 0 || id.Col >= config.ColCount {
			return
		}

		text := app.GetMsg(headerKeys[id.Col])
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	table.OnSelected = func(id widget.TableCellID) {
		if id.Row >= 0 && id.Row < len(displayContacts) {
			app.pickContact(displayContacts[id.Row])
		}
		table.UnselectAll()
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)
	table.SetColumnWidth(config.ColIDZodiac, config.ColWidthZodiac)

	refreshTable = func() {
		performSort()
		table.Refresh()
	}

	progress := widget.NewProgressBarInfinite()
	progress.Hide()

	var btnLoad *widget.Button
	load := func() {
		btnLoad.Disable()
		progress.Show()
		go func() {
			err := app.LoadContacts(app.Ctx)
			fyne.Do(func() {
				progress.Hide()
				btnLoad.Enable()
				switch {
				case errors.Is(err, engine.ErrPartialImport):
					slog.Warn(config.ErrVCardTruncated,
						config.LogKeyComponent, config.CompUI,
						config.LogKeyError, err)
					dialog.ShowInformation(app.GetMsg(config.TKeyWinContacts), app.GetMsg(config.TKeyErrPartial), w)
				case err != nil:
					slog.Error(config.ErrVCardSource,
						config.LogKeyComponent, config.CompUI,
						config.LogKeyError, err)
					dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrContacts)), w)
					return
				}
				displayContacts = app.snapshotContacts()
				refreshTable()
			})
		}()
	}
	btnLoad = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnLoad), theme.DownloadIcon(), load)

	top := container.NewHBox(btnLoad, layout.NewSpacer())
	w.SetContent(container.NewBorder(container.NewVBox(top, progress), nil, nil, nil, table))
	w.SetOnClosed(func() {
		app.contactsWindow = nil
	})

	w.Show()

	if len(displayContacts) == 0 && app.sourceConfigured() {
		load()
	}
}

// sourceConfigured reports whether an address book location was saved.
func (app *AgeCalcApp) sourceConfigured() bool {
	cfg := app.loadSourceConfig()
	if cfg.Mode == config.SourceModeLocal {
		return cfg.LocalPath != ""
	}
	return cfg.WebURL != ""
}
