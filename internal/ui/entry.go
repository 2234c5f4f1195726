package ui

import (
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
)

// FilteredEntry is an Entry that drops typed runes outside an allow-list.
// Pasted text bypasses the filter; attach a Validator for that case.
type FilteredEntry struct {
	widget.Entry
	allowed string
}

// NewNumericalEntry accepts digits only. Used for the server port.
func NewNumericalEntry() *FilteredEntry {
	e := &FilteredEntry{allowed: "0123456789"}
	e.ExtendBaseWidget(e)
	return e
}

// NewDateEntry accepts digits and date separators, and validates the
// content as a birth date.
func NewDateEntry() *FilteredEntry {
	e := &FilteredEntry{allowed: config.DateEntryRunes}
	e.ExtendBaseWidget(e)
	e.PlaceHolder = config.DatePlaceholder
	e.Validator = func(s string) error {
		_, err := engine.ParseDate(s)
		return err
	}
	return e
}

// TypedRune intercepts text input events.
func (e *FilteredEntry) TypedRune(r rune) {
	if strings.ContainsRune(e.allowed, r) {
		e.Entry.TypedRune(r)
	}
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *FilteredEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
