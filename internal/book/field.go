package book

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-assistant/internal/config"
)

// validate is shared across all field constructors. A validator.Validate is
// safe for concurrent use and caches compiled rules.
var validate = validator.New()

// Phone is a contact phone number: exactly ten ASCII digits.
// The invariant is enforced at construction; a Phone value always holds a
// valid number.
type Phone string

// NewPhone validates value and returns it as a Phone.
// Anything other than exactly ten digits fails with ErrInvalidFormat.
func NewPhone(value string) (Phone, error) {
	if err := validate.Var(value, config.PhoneRule); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidFormat, config.ErrPhoneFormat)
	}
	return Phone(value), nil
}

func (p Phone) String() string {
	return string(p)
}

// Birthday is a calendar date parsed from the external DD.MM.YYYY form.
// The year is retained even though recurrence logic only uses month and day.
type Birthday struct {
	date time.Time
}

// NewBirthday parses value as DD.MM.YYYY. Strings that are not a real
// calendar date in that layout fail with ErrInvalidFormat.
func NewBirthday(value string) (Birthday, error) {
	d, err := time.Parse(config.DateLayoutBirthday, value)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %s", ErrInvalidFormat, config.ErrBirthdayFormat)
	}
	return Birthday{date: d}, nil
}

// BirthdayFromDate wraps an already-parsed calendar date. Used by bulk
// importers whose sources carry their own date layouts.
func BirthdayFromDate(d time.Time) Birthday {
	return Birthday{date: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)}
}

// Date returns the stored calendar date.
func (b Birthday) Date() time.Time {
	return b.date
}

// String renders the birthday back to its external form, zero-padded.
func (b Birthday) String() string {
	return b.date.Format(config.DateLayoutBirthday)
}
