package ui_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-agecalc/internal/ui"
)

func TestNumericalEntry_TypedRune(t *testing.T) {
	entry := ui.NewNumericalEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	tests := []struct {
		name     string
		input    rune
		accepted bool
	}{
		{"Digit_Zero", '0', true},
		{"Digit_Nine", '9', true},
		{"Letter_a", 'a', false},
		{"Symbol_Dash", '-', false},
		{"Symbol_Space", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.SetText("")
			test.Type(entry, string(tt.input))

			if tt.accepted {
				assert.Equal(t, string(tt.input), entry.Text)
			} else {
				assert.Empty(t, entry.Text)
			}
		})
	}
}

func TestDateEntry_TypedRune(t *testing.T) {
	entry := ui.NewDateEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	test.Type(entry, "1990-12-31")
	assert.Equal(t, "1990-12-31", entry.Text)

	entry.SetText("")
	test.Type(entry, "31/12/1990")
	assert.Equal(t, "31/12/1990", entry.Text)

	entry.SetText("")
	test.Type(entry, "abc 1990")
	assert.Equal(t, "1990", entry.Text, "Letters and spaces are dropped")
}

func TestDateEntry_Validator(t *testing.T) {
	entry := ui.NewDateEntry()

	for _, valid := range []string{"1990-12-31", "2000-02-29", "31/12/1990"} {
		assert.NoError(t, entry.Validator(valid), valid)
	}
	for _, invalid := range []string{"", "1990-13-01", "2023-02-29", "12-1990"} {
		assert.Error(t, entry.Validator(invalid), invalid)
	}
}

func TestFilteredEntry_Keyboard(t *testing.T) {
	assert.Equal(t, mobile.NumberKeyboard, ui.NewNumericalEntry().Keyboard())
	assert.Equal(t, mobile.NumberKeyboard, ui.NewDateEntry().Keyboard())
}

// SetText bypasses the rune filter; validation happens separately.
func TestFilteredEntry_DirectSetText(t *testing.T) {
	entry := ui.NewNumericalEntry()
	entry.SetText("abc")
	assert.Equal(t, "abc", entry.Text)
}
