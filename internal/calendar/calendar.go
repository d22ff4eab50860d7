package calendar

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/config"
)

// Render produces an iCalendar feed with one all-day event per upcoming
// congratulation: contacts whose birthday falls in the lookahead window,
// greeted on their weekend-adjusted day. When nothing is upcoming a minimal
// valid VCALENDAR is returned so feed clients do not flag the body.
func Render(now time.Time, b *book.AddressBook) ([]byte, error) {
	upcoming := b.GetUpcomingBirthdays(now)
	if len(upcoming) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: suggest a refresh interval to polling clients.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Stamp in UTC; the event dates themselves are local calendar dates.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	count := 0
	for _, c := range upcoming {
		for _, name := range c.Names {
			event := ical.NewEvent()
			event.Props.SetText(config.PropUID,
				fmt.Sprintf(config.FormatUID, uidFor(name, c.Day), c.Day.Year(), config.ICalDomain))
			event.Props.SetText(config.PropSummary, fmt.Sprintf(config.FallbackSummary, name))

			dtStartProp := ical.NewProp(config.PropDTStart)
			dtStartProp.SetDate(c.Day)
			event.Props.Set(dtStartProp)
			event.Props.Set(dtStampProp)

			cal.Children = append(cal.Children, event.Component)
			count++
		}
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyCount, count,
		config.LogKeySizeBytes, buf.Len(),
	)
	return buf.Bytes(), nil
}

// uidFor derives a deterministic event UID so feed entries stay stable across
// republishes.
func uidFor(name string, day time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, name, day.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
