package console

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"library-management/library"
)

func TestValidUsername(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"alice", true},
		{"jane.doe_99", true},
		{"user@host", true},
		{"ab", false},                      // too short
		{"this-username-is-too-long-x", false}, // over 20
		{"has space", false},
		{"semi;colon", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, ValidUsername(tc.in), "username %q", tc.in)
	}
}

func TestValidPassword(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"Passw0rd!", true},
		{"C0mpl3x#Pass", true},
		{"short1A!", true}, // exactly 8
		{"Sh0rt!", false},
		{"alllowercase1!", false}, // no uppercase
		{"ALLUPPERCASE1!", false}, // no lowercase
		{"NoDigitsHere!", false},
		{"NoSpecial123A", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, ValidPassword(tc.in), "password %q", tc.in)
	}
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Jane"))
	assert.True(t, ValidName("Mary-Jane"))
	assert.True(t, ValidName("De La Cruz"))
	assert.False(t, ValidName("J"))
	assert.False(t, ValidName("R2D2"))
	assert.False(t, ValidName(""))
}

func TestValidDateOfBirth(t *testing.T) {
	today := library.Today()

	tooYoung := library.DateOf(today.Time().AddDate(-3, 0, 0))
	fine := library.DateOf(today.Time().AddDate(-30, 0, 0))
	tooOld := library.DateOf(today.Time().AddDate(-130, 0, 0))

	assert.True(t, ValidDateOfBirth(fine.String()))
	assert.False(t, ValidDateOfBirth(tooYoung.String()))
	assert.False(t, ValidDateOfBirth(tooOld.String()))
	assert.False(t, ValidDateOfBirth("not-a-date"))
	assert.False(t, ValidDateOfBirth("15/06/1990"))
}

func TestValidGenderAndParse(t *testing.T) {
	assert.True(t, ValidGender("male"))
	assert.True(t, ValidGender("Female"))
	assert.True(t, ValidGender(" MALE "))
	assert.False(t, ValidGender("other"))
	assert.False(t, ValidGender(""))

	assert.Equal(t, library.GenderFemale, ParseGender("Female"))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("jane@example.com"))
	assert.True(t, ValidEmail("a.b+c@sub.domain.org"))
	assert.False(t, ValidEmail("missing-at.example.com"))
	assert.False(t, ValidEmail("no@tld"))
	assert.False(t, ValidEmail("two@@example.com"))
}

func TestValidPhoneNumber(t *testing.T) {
	assert.True(t, ValidPhoneNumber("+12025550123"))
	assert.True(t, ValidPhoneNumber("2025550123"))
	assert.False(t, ValidPhoneNumber("12345"))
	assert.False(t, ValidPhoneNumber("+1 202 555 0123"))
	assert.False(t, ValidPhoneNumber("12345678901234567"))
}

func TestValidISBN(t *testing.T) {
	assert.True(t, ValidISBN("0306406152"))
	assert.True(t, ValidISBN("978-0306406157"))
	assert.True(t, ValidISBN("043942089X"))
	assert.False(t, ValidISBN("12345"))
	assert.False(t, ValidISBN("97803064061579999"))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate(library.Today().String()))
	assert.True(t, ValidDate("2020-01-15"))
	assert.False(t, ValidDate(library.Today().AddDays(1).String()))
	assert.False(t, ValidDate("2020-13-01"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "exact", truncateString("exact", 5))
	assert.Equal(t, "long st...", truncateString("long string here", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
}

func ExampleValidCopyCount() {
	fmt.Println(ValidCopyCount("3"), ValidCopyCount("0"), ValidCopyCount("x"))
	// Output: true false false
}
