package engine

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-agecalc/internal/config"
)

// SourceConfig tells the importer where to read vCards from.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// ContactAge is a contact's birthday projected onto today's calendar.
type ContactAge struct {
	Name  string
	Birth Date

	// YearKnown is false for vCard dates written as --MM-DD. Birth.Year then
	// holds config.DefaultLeapYear and Age is left at its zero value.
	YearKnown bool

	// Age is the full breakdown as of today. Only meaningful if YearKnown.
	Age AgeResult

	NextBirthday     Date
	NextBirthdayDays int

	// AgeNext is the age reached on NextBirthday. Zero if the year is unknown.
	AgeNext int

	Zodiac Zodiac
}

// ContactImporter reads birth dates out of a vCard address book.
type ContactImporter struct {
	Clock   Clock        // Interface for time mocking.
	Fetcher VCardFetcher // Interface for network abstraction.
}

// Import loads every contact with a usable BDAY, sorted by upcoming birthday.
func (ci *ContactImporter) Import(ctx context.Context, cfg SourceConfig) ([]ContactAge, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := ci.open(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardSource, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contacts, err := ci.Decode(ctx, reader)
	if err == nil {
		log.Debug(config.MsgImportDone,
			config.LogKeyCount, len(contacts),
			config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return contacts, err
}

// open returns the vCard stream for the configured source.
func (ci *ContactImporter) open(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if ci.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return ci.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// ErrPartialImport reports that decoding stopped at a malformed card. The
// contacts read before it are still returned alongside the error.
var ErrPartialImport = errors.New(config.ErrVCardTruncated)

// Decode parses a vCard stream. Cards with a missing or unreadable birthday
// are skipped. A syntax error ends the stream: the decoder cannot
// resynchronise, so the cards read so far are returned with ErrPartialImport.
func (ci *ContactImporter) Decode(ctx context.Context, r io.Reader) ([]ContactAge, error) {
	today := DateOf(ci.Clock.Now())
	decoder := vcard.NewDecoder(r)
	var contacts []ContactAge
	var truncated error

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyError, err)
			truncated = fmt.Errorf("%w: %w", ErrPartialImport, err)
			break
		}

		bday := card.Get(vcard.FieldBirthday)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, yearKnown, err := parseBirthday(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyValue, bday.Value)
			continue
		}

		entry, ok := project(contactName(card), birth, yearKnown, today)
		if !ok {
			slog.Debug(config.MsgSkippedFuture,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyDOB, birth.String())
			continue
		}
		contacts = append(contacts, entry)
	}

	slices.SortStableFunc(contacts, func(a, b ContactAge) int {
		if c := cmp.Compare(a.NextBirthdayDays, b.NextBirthdayDays); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return contacts, truncated
}

// project computes the age figures of one contact. ok is false for people
// whose known birth date is still in the future.
func project(name string, birth Date, yearKnown bool, today Date) (ContactAge, bool) {
	entry := ContactAge{
		Name:      name,
		Birth:     birth,
		YearKnown: yearKnown,
		Zodiac:    ZodiacSign(birth.Day, birth.Month),
	}

	if yearKnown {
		age, ok := Age(birth, today)
		if !ok {
			return ContactAge{}, false
		}
		entry.Age = age
	}

	entry.NextBirthday = NextBirthday(birth, today)
	entry.NextBirthdayDays = today.DaysUntil(entry.NextBirthday)
	if yearKnown {
		entry.AgeNext = AgeOn(birth, entry.NextBirthday)
	}
	return entry, true
}

// contactName prefers the formatted name, then the structured one.
func contactName(card vcard.Card) string {
	if fn := card.Get(vcard.FieldFormattedName); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(vcard.FieldName); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

// parseBirthday accepts the full date forms of ParseDate plus the vCard
// truncated forms (--MM-DD, --MMDD) that omit the year.
func parseBirthday(value string) (Date, bool, error) {
	if d, err := ParseDate(value); err == nil {
		return d, true, nil
	}

	for _, layout := range config.DateLayoutsNoYear {
		if t, err := time.Parse(layout, value); err == nil {
			// A leap year keeps --02-29 valid.
			return Date{Year: config.DefaultLeapYear, Month: t.Month(), Day: t.Day()}, false, nil
		}
	}

	return Date{}, false, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}
