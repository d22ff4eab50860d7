package book

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-assistant/internal/config"
)

// Record is one contact: a name, an ordered list of phones, and an optional
// birthday. The name is the identity key once the record is in an AddressBook
// and is immutable. Phones keep insertion order and may contain duplicates.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with a name only.
// An empty (or all-whitespace) name fails with ErrInvalidFormat.
func NewRecord(name string) (*Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, config.ErrNameEmpty)
	}
	return &Record{name: name}, nil
}

// Name returns the contact's identity key.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the stored birthday, if one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates value and appends it. Duplicates are allowed.
func (r *Record) AddPhone(value string) error {
	p, err := NewPhone(value)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the first phone exactly matching value and reports
// whether a removal occurred. An absent phone is not an error.
func (r *Record) RemovePhone(value string) bool {
	for i, p := range r.phones {
		if p.String() == value {
			r.phones = append(r.phones[:i], r.phones[i+1:]...)
			return true
		}
	}
	return false
}

// EditPhone replaces the first phone matching oldValue with newValue in place.
// It fails with ErrNotFound when no phone matches oldValue, and with the
// validator's ErrInvalidFormat when newValue is malformed; in both cases the
// existing phones are left unchanged.
func (r *Record) EditPhone(oldValue, newValue string) error {
	for i, p := range r.phones {
		if p.String() == oldValue {
			np, err := NewPhone(newValue)
			if err != nil {
				return err
			}
			r.phones[i] = np
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, config.ErrPhoneMissing)
}

// FindPhone returns the first phone exactly matching value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	for _, p := range r.phones {
		if p.String() == value {
			return p, true
		}
	}
	return "", false
}

// SetBirthday parses value as DD.MM.YYYY and overwrites any previous birthday.
func (r *Record) SetBirthday(value string) error {
	b, err := NewBirthday(value)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// SetBirthdayDate overwrites the birthday with an already-parsed date.
func (r *Record) SetBirthdayDate(b Birthday) {
	r.birthday = &b
}

// String renders the record as a single human-readable line.
func (r *Record) String() string {
	phones := config.PlaceholderEmpty
	if len(r.phones) > 0 {
		parts := make([]string, len(r.phones))
		for i, p := range r.phones {
			parts[i] = p.String()
		}
		phones = strings.Join(parts, config.PhoneSeparator)
	}

	birthday := config.PlaceholderEmpty
	if r.birthday != nil {
		birthday = r.birthday.String()
	}

	return fmt.Sprintf(config.FormatRecord, r.name, phones, birthday)
}
