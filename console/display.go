package console

import (
	"fmt"

	"library-management/library"
)

// Tabular output. Column widths mirror what a standard 100-column terminal
// fits without wrapping.

func (c *Console) printBooks(books []*library.Book) {
	if len(books) == 0 {
		fmt.Fprintln(c.out, "No books found.")
		return
	}
	fmt.Fprintf(c.out, "%-6s %-32s %-24s %-14s %-10s %s\n",
		"ID", "Title", "Author", "Genre", "Available", "Total")
	for _, b := range books {
		fmt.Fprintf(c.out, "%-6d %-32s %-24s %-14s %-10d %d\n",
			b.BookID,
			truncateString(b.Title, 32),
			truncateString(b.Author, 24),
			truncateString(b.Genre, 14),
			b.AvailableCopies,
			b.TotalCopies)
	}
	fmt.Fprintf(c.out, "%d book(s).\n", len(books))
}

func (c *Console) printBook(b *library.Book) {
	fmt.Fprintf(c.out, "ID:               %d\n", b.BookID)
	fmt.Fprintf(c.out, "Title:            %s\n", b.Title)
	fmt.Fprintf(c.out, "Author:           %s\n", b.Author)
	fmt.Fprintf(c.out, "Genre:            %s\n", b.Genre)
	fmt.Fprintf(c.out, "ISBN:             %s\n", b.ISBN)
	fmt.Fprintf(c.out, "Available copies: %d of %d\n", b.AvailableCopies, b.TotalCopies)
}

func (c *Console) printUsers(users []*library.User) {
	if len(users) == 0 {
		fmt.Fprintln(c.out, "No users found.")
		return
	}
	fmt.Fprintf(c.out, "%-6s %-20s %-10s %-10s %-20s %s\n",
		"ID", "Username", "Role", "Type", "Name", "Email")
	for _, u := range users {
		fmt.Fprintf(c.out, "%-6d %-20s %-10s %-10s %-20s %s\n",
			u.UserID,
			truncateString(u.Username, 20),
			u.Role,
			u.AdminType,
			truncateString(u.Firstname+" "+u.Surname, 20),
			u.Email)
	}
	fmt.Fprintf(c.out, "%d user(s).\n", len(users))
}

func (c *Console) printUser(u *library.User) {
	fmt.Fprintf(c.out, "ID:            %d\n", u.UserID)
	fmt.Fprintf(c.out, "Username:      %s\n", u.Username)
	fmt.Fprintf(c.out, "Role:          %s\n", u.Role)
	if u.IsAdmin() {
		fmt.Fprintf(c.out, "Admin type:    %s\n", u.AdminType)
	}
	fmt.Fprintf(c.out, "Name:          %s %s\n", u.Firstname, u.Surname)
	fmt.Fprintf(c.out, "Date of birth: %s\n", u.DateOfBirth)
	fmt.Fprintf(c.out, "Gender:        %s\n", u.Gender)
	fmt.Fprintf(c.out, "Email:         %s\n", u.Email)
	fmt.Fprintf(c.out, "Phone:         %s\n", u.PhoneNumber)
	a := u.Address
	if a.AddressID != 0 {
		fmt.Fprintf(c.out, "Address:       %s, %s %s, %s, %s\n",
			a.Street, a.City, a.Pincode, a.State, a.Country)
	}
}

func (c *Console) printHistory(entries []*library.BorrowingHistory) {
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No borrowing history.")
		return
	}
	fmt.Fprintf(c.out, "%-6s %-32s %-12s %-12s %s\n",
		"TxID", "Title", "Borrowed", "Returned", "Status")
	for _, e := range entries {
		returned := "-"
		if e.ReturnDate.Valid {
			returned = e.ReturnDate.Date.String()
		}
		fmt.Fprintf(c.out, "%-6d %-32s %-12s %-12s %s\n",
			e.TransactionID,
			truncateString(e.Title, 32),
			e.BorrowDate,
			returned,
			e.Status)
	}
}
