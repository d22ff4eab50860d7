package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/config"
	"github.com/tartampluch/go-assistant/internal/importer"
	"github.com/zalando/go-keyring"
)

// Command-layer error kinds. Core errors (book.ErrInvalidFormat,
// book.ErrNotFound) are mapped to user messages at this boundary; nothing is
// logged or fatal here.
var (
	errBadUsage        = errors.New("not enough arguments")
	errContactNotFound = fmt.Errorf("%w: %s", book.ErrNotFound, config.ErrContactMissing)
)

// Handler owns the single AddressBook instance and dispatches REPL commands
// against it.
type Handler struct {
	Book  *book.AddressBook
	Clock book.Clock
	Loc   *Localizer

	// Importer and Source back the import command. Importer may be nil when
	// importing is not wired.
	Importer *importer.Importer
	Source   importer.Source

	// Publish, when set, is invoked after every successful mutation so the
	// calendar feed stays in sync with the book.
	Publish func()
}

// Execute dispatches one parsed command and returns the reply to print plus a
// flag telling the REPL to stop.
func (h *Handler) Execute(ctx context.Context, command string, args []string) (string, bool) {
	var (
		reply   string
		err     error
		mutated bool
	)

	switch command {
	case config.CmdExit, config.CmdClose:
		return h.Loc.Msg(config.TKeyGoodbye), true
	case config.CmdHello:
		reply = h.Loc.Msg(config.TKeyGreeting)
	case config.CmdHelp, config.CmdHelpAlt:
		reply = h.Loc.Msg(config.TKeyHelp)
	case config.CmdAdd:
		reply, err = h.AddContact(args)
		mutated = err == nil
	case config.CmdChange:
		reply, err = h.ChangeContact(args)
		mutated = err == nil
	case config.CmdPhone:
		reply, err = h.ShowPhones(args)
	case config.CmdAll:
		reply = h.ShowAll()
	case config.CmdAddBirthday:
		reply, err = h.AddBirthday(args)
		mutated = err == nil
	case config.CmdShowBirthday:
		reply, err = h.ShowBirthday(args)
	case config.CmdBirthdays:
		reply = h.Birthdays()
	case config.CmdImport:
		reply, err = h.ImportContacts(ctx, args)
		mutated = err == nil
	default:
		reply = h.Loc.Msg(config.TKeyUnknownCommand)
	}

	if err != nil {
		reply = h.errorMessage(err)
	}
	if mutated && h.Publish != nil {
		h.Publish()
	}
	return reply, false
}

// AddContact creates or finds a record by name and appends a phone.
func (h *Handler) AddContact(args []string) (string, error) {
	if len(args) < 2 {
		return "", errBadUsage
	}
	name, phone := args[0], args[1]

	rec, ok := h.Book.Find(name)
	key := config.TKeyContactUpdated
	if !ok {
		var err error
		rec, err = book.NewRecord(name)
		if err != nil {
			return "", err
		}
		h.Book.AddRecord(rec)
		key = config.TKeyContactAdded
	}

	if err := rec.AddPhone(phone); err != nil {
		return "", err
	}
	return h.Loc.Msg(key), nil
}

// ChangeContact replaces an existing phone on an existing contact.
func (h *Handler) ChangeContact(args []string) (string, error) {
	if len(args) < 3 {
		return "", errBadUsage
	}
	name, oldPhone, newPhone := args[0], args[1], args[2]

	rec, ok := h.Book.Find(name)
	if !ok {
		return "", errContactNotFound
	}
	if err := rec.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return h.Loc.Msg(config.TKeyPhoneUpdated), nil
}

// ShowPhones renders a contact's phones on one line.
func (h *Handler) ShowPhones(args []string) (string, error) {
	if len(args) < 1 {
		return "", errBadUsage
	}
	name := args[0]

	rec, ok := h.Book.Find(name)
	if !ok {
		return "", errContactNotFound
	}

	phones := config.PlaceholderEmpty
	if ps := rec.Phones(); len(ps) > 0 {
		parts := make([]string, len(ps))
		for i, p := range ps {
			parts[i] = p.String()
		}
		phones = strings.Join(parts, config.NameSeparator)
	}
	return fmt.Sprintf(config.FormatNamedLine, name, phones), nil
}

// ShowAll renders every record, one per line, in insertion order.
func (h *Handler) ShowAll() string {
	if h.Book.Len() == 0 {
		return h.Loc.Msg(config.TKeyNoContacts)
	}

	lines := []string{h.Loc.Msg(config.TKeyAllHeader)}
	for _, rec := range h.Book.Records() {
		lines = append(lines, rec.String())
	}
	return strings.Join(lines, "\n")
}

// AddBirthday sets a contact's birthday, creating the contact if absent.
func (h *Handler) AddBirthday(args []string) (string, error) {
	if len(args) < 2 {
		return "", errBadUsage
	}
	name, birthday := args[0], args[1]

	rec, ok := h.Book.Find(name)
	if !ok {
		var err error
		rec, err = book.NewRecord(name)
		if err != nil {
			return "", err
		}
		h.Book.AddRecord(rec)
	}

	if err := rec.SetBirthday(birthday); err != nil {
		return "", err
	}
	return h.Loc.Msg(config.TKeyBirthdayAdded), nil
}

// ShowBirthday renders a contact's birthday, or a note when unset.
// An absent contact reads the same as an unset birthday.
func (h *Handler) ShowBirthday(args []string) (string, error) {
	if len(args) < 1 {
		return "", errBadUsage
	}
	name := args[0]

	rec, ok := h.Book.Find(name)
	if !ok {
		return h.Loc.Msg(config.TKeyNoBirthday), nil
	}
	b, ok := rec.Birthday()
	if !ok {
		return h.Loc.Msg(config.TKeyNoBirthday), nil
	}
	return fmt.Sprintf(config.FormatNamedLine, name, b.String()), nil
}

// Birthdays renders the grouped-by-date list of upcoming congratulations.
func (h *Handler) Birthdays() string {
	upcoming := h.Book.GetUpcomingBirthdays(h.Clock.Now())
	if len(upcoming) == 0 {
		return h.Loc.Msg(config.TKeyNoUpcoming)
	}

	lines := []string{h.Loc.Msg(config.TKeyUpcomingHeader)}
	for _, c := range upcoming {
		lines = append(lines, fmt.Sprintf(config.FormatNamedLine,
			c.Day.Format(config.DateLayoutBirthday),
			strings.Join(c.Names, config.NameSeparator)))
	}
	return strings.Join(lines, "\n")
}

// ImportContacts bulk-loads vCards into the book. With no argument the
// configured source is used; an argument overrides it with either a URL
// (http/https) or a local file path.
func (h *Handler) ImportContacts(ctx context.Context, args []string) (string, error) {
	if h.Importer == nil {
		return "", errors.New(config.ErrFetcherMissing)
	}

	src := h.Source
	if len(args) > 0 {
		src = sourceFromArg(args[0])
		// Keep the configured credentials for ad-hoc URLs on the same host.
		src.WebUser = h.Source.WebUser
		src.WebPass = h.Source.WebPass
	}

	if src.Mode == config.SourceModeWeb && src.WebPass == "" && src.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, src.WebUser); err == nil {
			src.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyComponent, config.CompCommands,
				config.LogKeyUser, src.WebUser,
			)
		}
	}

	count, err := h.Importer.Run(ctx, src, h.Book)
	if err != nil {
		return "", err
	}
	return h.Loc.MsgData(config.TKeyImportDone, map[string]any{"Count": count}), nil
}

// sourceFromArg classifies an import argument as a URL or a local path.
func sourceFromArg(arg string) importer.Source {
	if strings.HasPrefix(arg, config.SchemeHTTP+"://") || strings.HasPrefix(arg, config.SchemeHTTPS+"://") {
		return importer.Source{Mode: config.SourceModeWeb, WebURL: arg}
	}
	return importer.Source{Mode: config.SourceModeLocal, LocalPath: arg}
}

// errorMessage converts a command error into a user-facing localized message.
// The error surface is fully enumerated, so no catch-all formatting is needed
// beyond the final default.
func (h *Handler) errorMessage(err error) string {
	switch {
	case errors.Is(err, errBadUsage):
		return h.Loc.Msg(config.TKeyBadUsage)
	case errors.Is(err, errContactNotFound):
		return h.Loc.Msg(config.TKeyContactNotFound)
	case errors.Is(err, book.ErrNotFound):
		// Remaining NotFound kind: a phone lookup inside an existing record.
		return h.Loc.Msg(config.TKeyPhoneNotFound)
	case errors.Is(err, book.ErrInvalidFormat):
		return h.Loc.MsgData(config.TKeyInvalidValue, map[string]any{"Reason": reasonOf(err)})
	default:
		return h.Loc.MsgData(config.TKeyImportFailed, map[string]any{"Reason": err.Error()})
	}
}

// reasonOf strips the sentinel prefix from a wrapped core error, leaving the
// human-readable detail.
func reasonOf(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
