package ui

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
	"github.com/tartampluch/go-agecalc/internal/session"
	"github.com/zalando/go-keyring"
)

const addressBook = `BEGIN:VCARD
VERSION:3.0
FN:Zoe
BDAY:1990-12-31
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:adam
BDAY:2000-06-01
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Mystery
BDAY:--03-15
END:VCARD
`

func names(list []engine.ContactAge) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Name
	}
	return out
}

// -----------------------------------------------------------------------------
// Sorting Logic Tests
// -----------------------------------------------------------------------------

func TestSortContacts_Dates(t *testing.T) {
	data := []engine.ContactAge{
		{Name: "C_NextYear", NextBirthdayDays: 214},
		{Name: "A_LaterThisYear", NextBirthdayDays: 213},
		{Name: "B_Today", NextBirthdayDays: 0},
		{Name: "A_Today", NextBirthdayDays: 0},
	}

	sortContacts(data, config.ColIDDate, true)
	assert.Equal(t, []string{"A_Today", "B_Today", "A_LaterThisYear", "C_NextYear"}, names(data))

	sortContacts(data, config.ColIDDate, false)
	assert.Equal(t, "C_NextYear", data[0].Name)
}

func TestSortContacts_Names(t *testing.T) {
	data := []engine.ContactAge{{Name: "charlie"}, {Name: "Bob"}, {Name: "alice"}}

	sortContacts(data, config.ColIDName, true)
	assert.Equal(t, []string{"alice", "Bob", "charlie"}, names(data))

	sortContacts(data, config.ColIDName, false)
	assert.Equal(t, []string{"charlie", "Bob", "alice"}, names(data))
}

func TestSortContacts_Age(t *testing.T) {
	data := []engine.ContactAge{
		{Name: "Unknown1"},
		{Name: "Old", AgeNext: 50, YearKnown: true},
		{Name: "Baby", AgeNext: 1, YearKnown: true},
		{Name: "Unknown2"},
		{Name: "Young", AgeNext: 10, YearKnown: true},
	}

	sortContacts(data, config.ColIDAge, true)
	assert.Equal(t, []string{"Baby", "Young", "Old", "Unknown1", "Unknown2"}, names(data))

	sortContacts(data, config.ColIDAge, false)
	assert.Equal(t, []string{"Old", "Young", "Baby", "Unknown1", "Unknown2"}, names(data),
		"Unknown years stay at the bottom in both directions")
}

func TestSortContacts_Zodiac(t *testing.T) {
	data := []engine.ContactAge{
		{Name: "S", Zodiac: engine.Sagittarius},
		{Name: "A", Zodiac: engine.Aries},
		{Name: "C", Zodiac: engine.Capricorn},
	}

	sortContacts(data, config.ColIDZodiac, true)
	assert.Equal(t, []string{"C", "A", "S"}, names(data))
}

// -----------------------------------------------------------------------------
// Table Formatting
// -----------------------------------------------------------------------------

func TestContactCell(t *testing.T) {
	app, _, _ := setupTestApp(t)

	known := engine.ContactAge{
		Name:             "Zoe",
		Birth:            engine.Date{Year: 1990, Month: 12, Day: 31},
		YearKnown:        true,
		Age:              engine.AgeResult{Years: 34},
		NextBirthday:     engine.Date{Year: 2025, Month: 12, Day: 31},
		NextBirthdayDays: 213,
		AgeNext:          35,
		Zodiac:           engine.Capricorn,
	}

	tests := []struct {
		name  string
		entry engine.ContactAge
		col   int
		want  string
	}{
		{"Name", known, config.ColIDName, "Zoe"},
		{"Date", known, config.ColIDDate, "Dec 31, 2025"},
		{"Age transition", known, config.ColIDAge, "34 → 35"},
		{"Zodiac", known, config.ColIDZodiac, "Capricorn"},
		{"Birthday today", engine.ContactAge{YearKnown: true, Age: engine.AgeResult{Years: 25}, AgeNext: 25}, config.ColIDAge, "25"},
		{"Unknown year", engine.ContactAge{Zodiac: engine.Pisces}, config.ColIDAge, config.AgeUnknown},
		{"Out of range", known, 99, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.contactCell(tt.entry, tt.col))
		})
	}
}

// -----------------------------------------------------------------------------
// Import
// -----------------------------------------------------------------------------

func TestLoadContacts_LocalFile(t *testing.T) {
	app, _, vcards := setupTestApp(t)

	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(addressBook), 0o600))
	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeLocal)
	app.Preferences.SetString(config.PrefLocalPath, path)

	require.NoError(t, app.LoadContacts(context.Background()))

	got := app.snapshotContacts()
	require.Len(t, got, 3)
	assert.ElementsMatch(t, []string{"Zoe", "adam", "Mystery"}, names(got))
	vcards.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoadContacts_Web(t *testing.T) {
	app, _, vcards := setupTestApp(t)
	app.Preferences.SetString(config.PrefCardDAVURL, "https://dav.local/contacts")
	app.Preferences.SetString(config.PrefUsername, "admin")
	require.NoError(t, keyring.Set(config.KeyringService, "admin", "s3cret"))

	vcards.On("Fetch", mock.Anything, "https://dav.local/contacts", "admin", "s3cret").
		Return(io.NopCloser(strings.NewReader(addressBook)), nil).Once()

	assert.True(t, app.sourceConfigured())
	require.NoError(t, app.LoadContacts(context.Background()))
	assert.Len(t, app.snapshotContacts(), 3)
	vcards.AssertExpectations(t)
}

func TestLoadContacts_FailureKeepsPrevious(t *testing.T) {
	app, _, vcards := setupTestApp(t)
	app.Contacts = []engine.ContactAge{{Name: "Kept"}}
	app.Preferences.SetString(config.PrefCardDAVURL, "https://dav.local/contacts")

	vcards.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	require.Error(t, app.LoadContacts(context.Background()))
	assert.Equal(t, []string{"Kept"}, names(app.snapshotContacts()))
}

func TestLoadContacts_PartialImport(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Contacts = []engine.ContactAge{{Name: "Stale"}}

	book := "BEGIN:VCARD\nVERSION:3.0\nFN:Kept\nBDAY:1990-01-01\nEND:VCARD\n" +
		"BEGIN:VCARD\nVERSION:3.0\nFN:Broken\nno separator here\nEND:VCARD\n" +
		"BEGIN:VCARD\nVERSION:3.0\nFN:Lost\nBDAY:1991-01-01\nEND:VCARD\n"
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(book), 0o600))
	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeLocal)
	app.Preferences.SetString(config.PrefLocalPath, path)

	err := app.LoadContacts(context.Background())

	assert.ErrorIs(t, err, engine.ErrPartialImport)
	assert.Equal(t, []string{"Kept"}, names(app.snapshotContacts()))
}

func TestSourceConfigured(t *testing.T) {
	app, _, _ := setupTestApp(t)
	assert.False(t, app.sourceConfigured())

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeLocal)
	assert.False(t, app.sourceConfigured())

	app.Preferences.SetString(config.PrefLocalPath, "/tmp/contacts.vcf")
	assert.True(t, app.sourceConfigured())
}

// -----------------------------------------------------------------------------
// Window Behavior
// -----------------------------------------------------------------------------

func TestPickContact_LoadsCalculator(t *testing.T) {
	app, ins, _ := setupTestApp(t)
	ins.On("FetchInsights", mock.Anything, 1990, 34).Return(sample, nil)
	app.ShowMainWindow()
	states := watch(app)

	app.pickContact(engine.ContactAge{Name: "Mystery", Birth: engine.Date{Year: config.DefaultLeapYear, Month: 3, Day: 15}})
	assert.Empty(t, app.view.dateEntry.Text, "Contacts without a birth year cannot be calculated")

	app.pickContact(engine.ContactAge{Name: "Zoe", YearKnown: true, Birth: engine.Date{Year: 1990, Month: 12, Day: 31}})
	waitFor(t, states, session.Success)

	assert.Equal(t, "1990-12-31", app.view.dateEntry.Text)
	assert.Equal(t, "34", app.view.years.Text)
}

func TestContactsWindow_Singleton(t *testing.T) {
	app, _, _ := setupTestApp(t)
	assert.Nil(t, app.contactsWindow)

	app.ShowContactsWindow()
	first := app.contactsWindow
	require.NotNil(t, first)

	app.ShowContactsWindow()
	assert.Same(t, first, app.contactsWindow, "A second call focuses the open window")

	first.Close()
	assert.Nil(t, app.contactsWindow)
}

func TestContactsWindow_Title(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Contacts = []engine.ContactAge{
		{Name: "Later", NextBirthdayDays: 100},
		{Name: "Sooner", NextBirthdayDays: 3},
	}

	app.ShowContactsWindow()
	require.NotNil(t, app.contactsWindow)
	assert.Equal(t, "Contact Birthdays", app.contactsWindow.Title())
	assert.NotNil(t, app.contactsWindow.Content())
	assert.Equal(t, "Later", app.Contacts[0].Name, "Sorting works on a copy")
}
