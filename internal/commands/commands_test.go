package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/config"
)

// fixedClock pins "now" for the birthdays command.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// newTestHandler wires a Handler around a fresh book and English messages.
// The clock defaults to Monday 2025-06-09.
func newTestHandler() *Handler {
	return &Handler{
		Book:  book.New(),
		Clock: fixedClock{now: time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)},
		Loc:   NewLocalizer(config.DefaultLanguage),
	}
}

func exec(t *testing.T, h *Handler, line string) string {
	t.Helper()
	command, args := Parse(line)
	reply, _ := h.Execute(context.Background(), command, args)
	return reply
}

func TestExecute_AddContact(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, "Contact added.", exec(t, h, "add Alice 0501234567"))

	rec, ok := h.Book.Find("Alice")
	require.True(t, ok)
	assert.Equal(t, []book.Phone{"0501234567"}, rec.Phones())

	// Same name again appends a phone instead of creating a duplicate.
	assert.Equal(t, "Contact updated.", exec(t, h, "add Alice 0507654321"))
	assert.Equal(t, 1, h.Book.Len())
	rec, _ = h.Book.Find("Alice")
	assert.Len(t, rec.Phones(), 2)
}

func TestExecute_AddContact_InvalidPhone(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name  string
		phone string
	}{
		{"TooShort", "12345"},
		{"TooLong", "123456789012"},
		{"Letters", "05012345ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := exec(t, h, "add Bob "+tt.phone)
			assert.Equal(t, "Invalid value: "+config.ErrPhoneFormat+".", reply)
		})
	}
}

func TestExecute_ChangeContact(t *testing.T) {
	h := newTestHandler()
	exec(t, h, "add Alice 0501234567")

	assert.Equal(t, "Phone updated.", exec(t, h, "change Alice 0501234567 0509999999"))

	rec, _ := h.Book.Find("Alice")
	assert.Equal(t, []book.Phone{"0509999999"}, rec.Phones())
}

func TestExecute_ChangeContact_Errors(t *testing.T) {
	h := newTestHandler()
	exec(t, h, "add Alice 0501234567")

	tests := []struct {
		name  string
		line  string
		reply string
	}{
		{"ContactMissing", "change Bob 0501234567 0509999999", "Contact not found."},
		{"PhoneMissing", "change Alice 0000000000 0509999999", "Old phone not found."},
		{"NewPhoneInvalid", "change Alice 0501234567 123", "Invalid value: " + config.ErrPhoneFormat + "."},
		{"BadUsage", "change Alice 0501234567", "Not enough arguments. Type 'help' to see usage."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reply, exec(t, h, tt.line))
		})
	}

	// A failed edit must leave the original phone in place.
	rec, _ := h.Book.Find("Alice")
	assert.Equal(t, []book.Phone{"0501234567"}, rec.Phones())
}

func TestExecute_ShowPhones(t *testing.T) {
	h := newTestHandler()
	exec(t, h, "add Alice 0501234567")
	exec(t, h, "add Alice 0507654321")

	assert.Equal(t, "Alice: 0501234567, 0507654321", exec(t, h, "phone Alice"))
	assert.Equal(t, "Contact not found.", exec(t, h, "phone Bob"))
}

func TestExecute_ShowAll(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, "No contacts yet.", exec(t, h, "all"))

	exec(t, h, "add Alice 0501234567")
	exec(t, h, "add Bob 0507654321")
	exec(t, h, "add-birthday Bob 15.06.1985")

	out := exec(t, h, "all")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "All contacts:", lines[0])
	assert.Equal(t, "Contact name: Alice, phones: 0501234567, birthday: —", lines[1])
	assert.Equal(t, "Contact name: Bob, phones: 0507654321, birthday: 15.06.1985", lines[2])
}

func TestExecute_AddBirthday(t *testing.T) {
	h := newTestHandler()
	exec(t, h, "add Alice 0501234567")

	assert.Equal(t, "Birthday added.", exec(t, h, "add-birthday Alice 11.06.1990"))

	// Works for a contact that does not exist yet; the record is created.
	assert.Equal(t, "Birthday added.", exec(t, h, "add-birthday Carol 01.01.2000"))
	rec, ok := h.Book.Find("Carol")
	require.True(t, ok)
	assert.Empty(t, rec.Phones())
}

func TestExecute_AddBirthday_InvalidDate(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name string
		date string
	}{
		{"WrongOrder", "1990-06-11"},
		{"NoPadding", "5.6.1990"},
		{"NotADate", "tomorrow"},
		{"ImpossibleDay", "32.01.1990"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := exec(t, h, "add-birthday Alice "+tt.date)
			assert.Equal(t, "Invalid value: "+config.ErrBirthdayFormat+".", reply)
		})
	}
}

func TestExecute_ShowBirthday(t *testing.T) {
	h := newTestHandler()
	exec(t, h, "add Alice 0501234567")
	exec(t, h, "add-birthday Alice 11.06.1990")

	assert.Equal(t, "Alice: 11.06.1990", exec(t, h, "show-birthday Alice"))
	assert.Equal(t, "No birthday set.", exec(t, h, "show-birthday Bob"), "Absent contact reads as unset")

	exec(t, h, "add Carol 0500000000")
	assert.Equal(t, "No birthday set.", exec(t, h, "show-birthday Carol"))
}

func TestExecute_Birthdays(t *testing.T) {
	h := newTestHandler() // Today is Monday 2025-06-09

	assert.Equal(t, "No birthdays in the next 7 days.", exec(t, h, "birthdays"))

	exec(t, h, "add-birthday Alice 11.06.1990") // Wednesday, stays put
	exec(t, h, "add-birthday Bob 14.06.1985")   // Saturday, shifts to Monday 16th
	exec(t, h, "add-birthday Carol 11.06.2001") // Shares Alice's day
	exec(t, h, "add-birthday Dave 25.12.1970")  // Outside the window

	out := exec(t, h, "birthdays")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Upcoming birthdays:", lines[0])
	assert.Equal(t, "11.06.2025: Alice, Carol", lines[1])
	assert.Equal(t, "16.06.2025: Bob", lines[2])
}

func TestExecute_GreetingAndUnknown(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, "How can I help you?", exec(t, h, "hello"))
	assert.Equal(t, "Invalid command. Type 'help' to see available commands.",
		exec(t, h, "frobnicate"))
	assert.Contains(t, exec(t, h, "help"), "add-birthday")
}

func TestExecute_QuitCommands(t *testing.T) {
	h := newTestHandler()

	for _, cmd := range []string{config.CmdExit, config.CmdClose} {
		reply, quit := h.Execute(context.Background(), cmd, nil)
		assert.True(t, quit, "%q must stop the loop", cmd)
		assert.Equal(t, "Good bye!", reply)
	}
}

func TestExecute_PublishOnMutation(t *testing.T) {
	h := newTestHandler()
	published := 0
	h.Publish = func() { published++ }

	exec(t, h, "add Alice 0501234567") // Mutation
	assert.Equal(t, 1, published)

	exec(t, h, "phone Alice") // Read
	assert.Equal(t, 1, published)

	exec(t, h, "add-birthday Alice 11.06.1990") // Mutation
	assert.Equal(t, 2, published)

	exec(t, h, "add Bob 123") // Failed mutation
	assert.Equal(t, 2, published)
}

func TestExecute_FrenchMessages(t *testing.T) {
	h := newTestHandler()
	h.Loc.SetLanguage("fr")

	reply := exec(t, h, "add Alice 0501234567")
	assert.NotEqual(t, "Contact added.", reply)
	assert.NotEmpty(t, reply)
}
