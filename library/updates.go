package library

import (
	"fmt"
	"strings"
)

// Single-field updates are expressed as closed variant types rather than
// free-form column-name strings: each updatable field has exactly one
// constructor, so an unsupported field or value type does not compile.

// BookUpdate selects one updatable book field together with its new value.
type BookUpdate interface {
	bookColumn() (column string, value any)
}

type bookUpdate struct {
	column string
	value  any
}

func (u bookUpdate) bookColumn() (string, any) { return u.column, u.value }

// SetTitle updates a book's title.
func SetTitle(title string) BookUpdate { return bookUpdate{"title", title} }

// SetAuthor updates a book's author.
func SetAuthor(author string) BookUpdate { return bookUpdate{"author", author} }

// SetGenre updates a book's genre.
func SetGenre(genre string) BookUpdate { return bookUpdate{"genre", genre} }

// SetISBN updates a book's ISBN.
func SetISBN(isbn string) BookUpdate { return bookUpdate{"isbn", isbn} }

// SetTotalCopies updates a book's total copy count. The schema CHECK rejects
// totals below the number of copies currently available.
func SetTotalCopies(total int) BookUpdate { return bookUpdate{"number_of_total_copies", total} }

// UpdateBookField applies a single-field update to a book.
func (d *Database) UpdateBookField(bookID int64, upd BookUpdate) error {
	column, value := upd.bookColumn()
	res, err := d.db.Exec(
		fmt.Sprintf(`UPDATE books SET %s=? WHERE book_id=?`, column), value, bookID)
	if err != nil {
		if strings.Contains(err.Error(), "CHECK constraint failed") {
			return invalid("total copies cannot drop below the copies currently issued")
		}
		return fmt.Errorf("update book %d field %s: %w", bookID, column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("book", bookID)
	}
	return nil
}

// MemberUpdate selects one updatable member profile field. Username renames
// and password changes have dedicated paths (uniqueness and hashing), so
// they are deliberately absent here.
type MemberUpdate interface {
	memberColumn() (column string, value any)
}

type memberUpdate struct {
	column string
	value  any
}

func (u memberUpdate) memberColumn() (string, any) { return u.column, u.value }

// SetFirstname updates a member's first name.
func SetFirstname(firstname string) MemberUpdate { return memberUpdate{"firstname", firstname} }

// SetSurname updates a member's surname.
func SetSurname(surname string) MemberUpdate { return memberUpdate{"surname", surname} }

// SetDateOfBirth updates a member's date of birth.
func SetDateOfBirth(dob Date) MemberUpdate { return memberUpdate{"date_of_birth", dob} }

// SetGender updates a member's gender.
func SetGender(gender Gender) MemberUpdate { return memberUpdate{"gender", gender} }

// SetEmail updates a member's email address.
func SetEmail(email string) MemberUpdate { return memberUpdate{"email", email} }

// SetPhoneNumber updates a member's phone number.
func SetPhoneNumber(phone string) MemberUpdate { return memberUpdate{"phone_number", phone} }

// UpdateMemberField applies a single-field profile update to a user row.
func (d *Database) UpdateMemberField(userID int64, upd MemberUpdate) error {
	column, value := upd.memberColumn()
	res, err := d.db.Exec(
		fmt.Sprintf(`UPDATE users SET %s=? WHERE user_id=?`, column), value, userID)
	if err != nil {
		return fmt.Errorf("update user %d field %s: %w", userID, column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("user", userID)
	}
	return nil
}

// AddressUpdate selects one updatable address field.
type AddressUpdate interface {
	addressColumn() (column string, value any)
}

type addressUpdate struct {
	column string
	value  any
}

func (u addressUpdate) addressColumn() (string, any) { return u.column, u.value }

// SetStreet updates the street line of an address.
func SetStreet(street string) AddressUpdate { return addressUpdate{"street", street} }

// SetCity updates the city of an address.
func SetCity(city string) AddressUpdate { return addressUpdate{"city", city} }

// SetPincode updates the postal code of an address.
func SetPincode(pincode string) AddressUpdate { return addressUpdate{"pincode", pincode} }

// SetState updates the state of an address.
func SetState(state string) AddressUpdate { return addressUpdate{"state", state} }

// SetCountry updates the country of an address.
func SetCountry(country string) AddressUpdate { return addressUpdate{"country", country} }

// UpdateAddressField applies a single-field update to a user's address.
func (d *Database) UpdateAddressField(userID int64, upd AddressUpdate) error {
	column, value := upd.addressColumn()
	res, err := d.db.Exec(
		fmt.Sprintf(`UPDATE addresses SET %s=? WHERE user_id=?`, column), value, userID)
	if err != nil {
		return fmt.Errorf("update address for user %d field %s: %w", userID, column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("address", userID)
	}
	return nil
}
