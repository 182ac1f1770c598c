package console

import (
	"fmt"

	"library-management/library"
)

// memberMenu serves a logged-in member. Returns true when the member chose
// to exit the application rather than log out.
func (c *Console) memberMenu(user *library.User) bool {
	for {
		fmt.Fprintln(c.out, "\n--- Member Menu ---")
		fmt.Fprintln(c.out, "1.  Borrow a book")
		fmt.Fprintln(c.out, "2.  Return a book")
		fmt.Fprintln(c.out, "3.  My borrowed books")
		fmt.Fprintln(c.out, "4.  My borrowing history")
		fmt.Fprintln(c.out, "5.  Update my profile")
		fmt.Fprintln(c.out, "6.  View all books")
		fmt.Fprintln(c.out, "7.  View available books")
		fmt.Fprintln(c.out, "8.  Find books by genre")
		fmt.Fprintln(c.out, "9.  Find a book by title")
		fmt.Fprintln(c.out, "10. Find books by author")
		fmt.Fprintln(c.out, "11. Search books")
		fmt.Fprintln(c.out, "12. Logout")
		fmt.Fprintln(c.out, "13. Exit")

		choice := c.promptChoice()
		if c.eof {
			return true
		}
		switch choice {
		case 1:
			c.borrowBook(user.UserID)
		case 2:
			c.returnBook(user.UserID)
		case 3:
			c.showBorrowedBooks(user.UserID)
		case 4:
			c.showBorrowingHistory(user.UserID)
		case 5:
			c.updateMemberProfile(user.UserID)
		case 6:
			c.viewAllBooks()
		case 7:
			c.viewAvailableBooks()
		case 8:
			c.findBooksByGenre()
		case 9:
			c.findBookByTitle()
		case 10:
			c.findBooksByAuthor()
		case 11:
			c.searchBooks()
		case 12:
			fmt.Fprintln(c.out, "Logged out.")
			return false
		case 13:
			fmt.Fprintln(c.out, "Goodbye!")
			return true
		default:
			fmt.Fprintln(c.out, "Invalid choice, please try again.")
		}
	}
}

// adminMenu serves a logged-in administrator. The super administrator sees
// the same top-level menu; the extra powers are gated inside user operations.
func (c *Console) adminMenu(user *library.User) bool {
	title := "Administrator Menu"
	if user.IsSuperAdmin() {
		title = "Super Administrator Menu"
	}
	for {
		fmt.Fprintf(c.out, "\n--- %s ---\n", title)
		fmt.Fprintln(c.out, "1. User operations")
		fmt.Fprintln(c.out, "2. Book operations")
		fmt.Fprintln(c.out, "3. Logout")
		fmt.Fprintln(c.out, "4. Exit")

		choice := c.promptChoice()
		if c.eof {
			return true
		}
		switch choice {
		case 1:
			if exit := c.userOpsMenu(user); exit {
				return true
			}
		case 2:
			if exit := c.bookOpsMenu(user); exit {
				return true
			}
		case 3:
			fmt.Fprintln(c.out, "Logged out.")
			return false
		case 4:
			fmt.Fprintln(c.out, "Goodbye!")
			return true
		default:
			fmt.Fprintln(c.out, "Invalid choice, please try again.")
		}
	}
}
