package book

import (
	"sort"
	"time"

	"github.com/tartampluch/go-assistant/internal/config"
)

// AddressBook maps contact names to Records. Keys are unique; adding a record
// under an existing name overwrites the previous record entirely. Iteration
// follows insertion order, which also fixes the order of names grouped under
// one congratulation day.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New creates an empty AddressBook.
func New() *AddressBook {
	return &AddressBook{
		records: make(map[string]*Record),
	}
}

// AddRecord inserts or overwrites by the record's name. Overwriting keeps the
// name's original position in iteration order.
func (b *AddressBook) AddRecord(r *Record) {
	if _, exists := b.records[r.Name()]; !exists {
		b.order = append(b.order, r.Name())
	}
	b.records[r.Name()] = r
}

// Find returns the record stored under name. Exact string match only.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the entry stored under name. Absent names are a no-op.
func (b *AddressBook) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored records.
func (b *AddressBook) Len() int {
	return len(b.records)
}

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// Congratulation groups the contact names whose greeting is due on Day.
type Congratulation struct {
	Day   time.Time
	Names []string
}

// GetUpcomingBirthdays selects the contacts whose birthday falls inside the
// inclusive window [today, today+7] and groups their names by congratulation
// day. Greetings landing on Saturday or Sunday move to the following Monday;
// the window check happens before the shift, so a greeting pushed past the
// window's upper bound is still included.
//
// A Feb 29 birthday in a non-leap target year normalizes to March 1, which is
// the behavior of time.Date for out-of-range days.
//
// The result is sorted ascending by day; names under one day keep the book's
// insertion order.
func (b *AddressBook) GetUpcomingBirthdays(today time.Time) []Congratulation {
	day := dateOnly(today)
	end := day.AddDate(0, 0, config.UpcomingWindowDays)

	grouped := make(map[time.Time][]string)

	for _, name := range b.order {
		rec := b.records[name]
		bday, ok := rec.Birthday()
		if !ok {
			continue
		}

		candidate := occurrenceIn(day.Year(), bday.Date(), day.Location())
		if candidate.Before(day) {
			// Already passed this year, look at next year's occurrence.
			candidate = occurrenceIn(day.Year()+1, bday.Date(), day.Location())
		}

		if candidate.Before(day) || candidate.After(end) {
			continue
		}

		congratulation := rollForward(candidate)
		grouped[congratulation] = append(grouped[congratulation], rec.Name())
	}

	out := make([]Congratulation, 0, len(grouped))
	for d, names := range grouped {
		out = append(out, Congratulation{Day: d, Names: names})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})
	return out
}

// occurrenceIn applies a birthday's month and day to the given year.
// time.Date normalizes Feb 29 to Mar 1 when year is not a leap year.
func occurrenceIn(year int, birthDate time.Time, loc *time.Location) time.Time {
	return time.Date(year, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
}

// rollForward shifts weekend dates to the following Monday.
func rollForward(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// dateOnly truncates a timestamp to its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
