package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/config"
)

// Source describes where vCards are imported from.
type Source struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Importer bulk-loads contacts from a vCard stream into an AddressBook.
// Malformed cards are skipped with a log entry; they never abort the run.
type Importer struct {
	Fetcher VCardFetcher // Interface for network abstraction.
}

// Run reads the configured source and adds one record per usable vCard.
// It returns the number of records added to dst.
func (im *Importer) Run(ctx context.Context, src Source, dst *book.AddressBook) (int, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyMode, src.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := im.acquireStream(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	decoder := vcard.NewDecoder(reader)
	stats := struct{ processed, imported int }{0, 0}

	for {
		if err := ctx.Err(); err != nil {
			return stats.imported, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep going to maximize data recovery.
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			continue
		}
		stats.processed++

		rec, ok := recordFromCard(card, log)
		if !ok {
			continue
		}
		dst.AddRecord(rec)
		stats.imported++
	}

	log.Info(config.MsgImportDone,
		config.LogKeyTotal, stats.processed,
		config.LogKeyImported, stats.imported,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return stats.imported, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (im *Importer) acquireStream(ctx context.Context, src Source) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeLocal:
		if src.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.LocalPath)
	case config.SourceModeWeb:
		if src.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, src.WebURL, src.WebUser, src.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Mode)
	}
}

// recordFromCard converts one vCard into a Record.
// Name strategy: FN (Formatted) > N (Structured); nameless cards are skipped.
// Phone values are normalized before validation; values that still are not
// ten digits are dropped individually.
func recordFromCard(card vcard.Card, log *slog.Logger) (*book.Record, bool) {
	name := ""
	if fn := card.Get(config.VCardFN); fn != nil {
		name = fn.Value
	} else if n := card.Get(config.VCardN); n != nil {
		name = n.Value
	}

	rec, err := book.NewRecord(name)
	if err != nil {
		log.Warn(config.MsgSkippedName, config.LogKeyError, err)
		return nil, false
	}

	for _, tel := range card.Values(config.VCardTEL) {
		if err := rec.AddPhone(normalizePhone(tel)); err != nil {
			log.Debug(config.MsgSkippedPhone,
				config.LogKeyName, name,
				config.LogKeyValue, tel,
			)
		}
	}

	if bday := card.Get(config.VCardBDAY); bday != nil && bday.Value != "" {
		if d, err := parseDate(bday.Value); err == nil {
			rec.SetBirthdayDate(book.BirthdayFromDate(d))
		} else {
			log.Debug(config.MsgSkippedDate,
				config.LogKeyName, name,
				config.LogKeyValue, bday.Value,
			)
		}
	}

	return rec, true
}

// normalizePhone strips the separators commonly found in vCard TEL values.
func normalizePhone(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch r {
		case ' ', '-', '(', ')', '.':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseDate handles the vCard date layouts seen in the wild.
// Truncated dates (--MM-DD) get a leap-year fallback so Feb 29 stays valid.
func parseDate(value string) (time.Time, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}
