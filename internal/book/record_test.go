package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-assistant/internal/book"
)

func mustRecord(t *testing.T, name string) *book.Record {
	t.Helper()
	r, err := book.NewRecord(name)
	assert.NoError(t, err)
	return r
}

func TestNewRecord_EmptyName(t *testing.T) {
	_, err := book.NewRecord("")
	assert.ErrorIs(t, err, book.ErrInvalidFormat)

	_, err = book.NewRecord("   ")
	assert.ErrorIs(t, err, book.ErrInvalidFormat)
}

func TestRecord_AddPhone(t *testing.T) {
	r := mustRecord(t, "John")

	assert.NoError(t, r.AddPhone("1111111111"))
	assert.NoError(t, r.AddPhone("2222222222"))
	// Duplicates are allowed and insertion order is preserved.
	assert.NoError(t, r.AddPhone("1111111111"))

	phones := r.Phones()
	assert.Len(t, phones, 3)
	assert.Equal(t, "1111111111", phones[0].String())
	assert.Equal(t, "2222222222", phones[1].String())
	assert.Equal(t, "1111111111", phones[2].String())

	err := r.AddPhone("invalid")
	assert.ErrorIs(t, err, book.ErrInvalidFormat)
	assert.Len(t, r.Phones(), 3, "failed add must not change the list")
}

func TestRecord_RemovePhone(t *testing.T) {
	r := mustRecord(t, "John")
	assert.NoError(t, r.AddPhone("1111111111"))
	assert.NoError(t, r.AddPhone("2222222222"))

	assert.True(t, r.RemovePhone("1111111111"))
	assert.Len(t, r.Phones(), 1)

	// Absent phone is a no-op, not an error.
	assert.False(t, r.RemovePhone("9999999999"))
	assert.Len(t, r.Phones(), 1)
}

func TestRecord_EditPhone(t *testing.T) {
	r := mustRecord(t, "John")
	assert.NoError(t, r.AddPhone("1111111111"))

	// Success: old phone replaced in place.
	assert.NoError(t, r.EditPhone("1111111111", "2222222222"))
	p, ok := r.FindPhone("2222222222")
	assert.True(t, ok)
	assert.Equal(t, "2222222222", p.String())
	_, ok = r.FindPhone("1111111111")
	assert.False(t, ok)

	// Missing old phone fails with ErrNotFound and leaves phones unchanged.
	err := r.EditPhone("9999999999", "3333333333")
	assert.ErrorIs(t, err, book.ErrNotFound)
	assert.Equal(t, []book.Phone{"2222222222"}, r.Phones())

	// Invalid new phone fails with ErrInvalidFormat; the original survives.
	err = r.EditPhone("2222222222", "bad")
	assert.ErrorIs(t, err, book.ErrInvalidFormat)
	assert.Equal(t, []book.Phone{"2222222222"}, r.Phones())
}

func TestRecord_SetBirthday(t *testing.T) {
	r := mustRecord(t, "John")

	_, ok := r.Birthday()
	assert.False(t, ok, "fresh record has no birthday")

	assert.NoError(t, r.SetBirthday("15.06.1990"))
	b, ok := r.Birthday()
	assert.True(t, ok)
	assert.Equal(t, "15.06.1990", b.String())

	// Re-assignment overwrites the previous value.
	assert.NoError(t, r.SetBirthday("01.01.2000"))
	b, _ = r.Birthday()
	assert.Equal(t, "01.01.2000", b.String())

	// A failed parse keeps the previous value.
	assert.ErrorIs(t, r.SetBirthday("99.99.9999"), book.ErrInvalidFormat)
	b, _ = r.Birthday()
	assert.Equal(t, "01.01.2000", b.String())
}

func TestRecord_String(t *testing.T) {
	r := mustRecord(t, "John")
	assert.Equal(t, "Contact name: John, phones: —, birthday: —", r.String())

	assert.NoError(t, r.AddPhone("1111111111"))
	assert.NoError(t, r.AddPhone("2222222222"))
	assert.NoError(t, r.SetBirthday("15.06.1990"))
	assert.Equal(t,
		"Contact name: John, phones: 1111111111; 2222222222, birthday: 15.06.1990",
		r.String())
}
