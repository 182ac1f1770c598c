package console

import (
	"fmt"
	"strconv"

	"library-management/library"
)

// Book flows shared by members and administrators, plus the administrator
// book-operations menu.

func (c *Console) viewAllBooks() {
	books, err := c.svc.ListBooks()
	if err != nil {
		c.fail(err)
		return
	}
	c.printBooks(books)
}

func (c *Console) viewAvailableBooks() {
	books, err := c.svc.ListAvailableBooks()
	if err != nil {
		c.fail(err)
		return
	}
	c.printBooks(books)
}

func (c *Console) findBooksByGenre() {
	genre := c.prompt("Genre: ")
	books, err := c.svc.BooksByGenre(genre)
	if err != nil {
		c.fail(err)
		return
	}
	c.printBooks(books)
}

func (c *Console) findBookByTitle() {
	title := c.prompt("Title: ")
	book, err := c.svc.GetBookByTitle(title)
	if err != nil {
		c.fail(err)
		return
	}
	c.printBook(book)
}

func (c *Console) findBooksByAuthor() {
	author := c.prompt("Author: ")
	books, err := c.svc.BooksByAuthor(author)
	if err != nil {
		c.fail(err)
		return
	}
	c.printBooks(books)
}

func (c *Console) searchBooks() {
	keyword := c.prompt("Search keyword: ")
	books, err := c.svc.SearchBooks(keyword)
	if err != nil {
		c.fail(err)
		return
	}
	c.printBooks(books)
}

// borrowBook issues a book to the given member, dated today.
func (c *Console) borrowBook(userID int64) {
	c.viewAvailableBooks()
	bookID, ok := c.promptInt64("Book ID to borrow: ")
	if !ok {
		return
	}
	transactionID, err := c.svc.Borrow(userID, bookID, library.Today(), library.NullDate{})
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Book borrowed. Transaction ID: %d\n", transactionID)
}

// returnBook closes the member's open loan for a book, dated today.
func (c *Console) returnBook(userID int64) {
	c.showBorrowedBooks(userID)
	bookID, ok := c.promptInt64("Book ID to return: ")
	if !ok {
		return
	}
	transactionID, err := c.svc.ActiveBorrowID(userID, bookID)
	if err != nil {
		if library.IsNotFound(err) {
			fmt.Fprintln(c.out, "You have not borrowed that book.")
			return
		}
		c.fail(err)
		return
	}
	if err := c.svc.Return(transactionID, library.Today()); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "Book returned, thank you!")
}

func (c *Console) showBorrowedBooks(userID int64) {
	books, err := c.svc.BorrowedBooksByUser(userID)
	if err != nil {
		c.fail(err)
		return
	}
	if len(books) == 0 {
		fmt.Fprintln(c.out, "No books currently borrowed.")
		return
	}
	c.printBooks(books)
}

func (c *Console) showBorrowingHistory(userID int64) {
	entries, err := c.svc.BorrowingHistory(userID)
	if err != nil {
		c.fail(err)
		return
	}
	c.printHistory(entries)
}

// bookOpsMenu is the administrator catalog menu. Returns true on exit.
func (c *Console) bookOpsMenu(_ *library.User) bool {
	for {
		fmt.Fprintln(c.out, "\n--- Book Operations ---")
		fmt.Fprintln(c.out, "1.  Add a book")
		fmt.Fprintln(c.out, "2.  Find a book by ID")
		fmt.Fprintln(c.out, "3.  Find a book by title")
		fmt.Fprintln(c.out, "4.  View all books")
		fmt.Fprintln(c.out, "5.  View available books")
		fmt.Fprintln(c.out, "6.  Find books by genre")
		fmt.Fprintln(c.out, "7.  Find books by author")
		fmt.Fprintln(c.out, "8.  Search books")
		fmt.Fprintln(c.out, "9.  Update a book")
		fmt.Fprintln(c.out, "10. Update one book field")
		fmt.Fprintln(c.out, "11. Remove a book")
		fmt.Fprintln(c.out, "12. View borrowed books")
		fmt.Fprintln(c.out, "13. Issue a book to a member")
		fmt.Fprintln(c.out, "14. Accept a return from a member")
		fmt.Fprintln(c.out, "15. Back")
		fmt.Fprintln(c.out, "16. Exit")

		choice := c.promptChoice()
		if c.eof {
			return true
		}
		switch choice {
		case 1:
			c.addBook()
		case 2:
			c.findBookByID()
		case 3:
			c.findBookByTitle()
		case 4:
			c.viewAllBooks()
		case 5:
			c.viewAvailableBooks()
		case 6:
			c.findBooksByGenre()
		case 7:
			c.findBooksByAuthor()
		case 8:
			c.searchBooks()
		case 9:
			c.updateBook()
		case 10:
			c.updateBookField()
		case 11:
			c.removeBook()
		case 12:
			c.viewAllBorrowedBooks()
		case 13:
			c.issueToMember()
		case 14:
			c.acceptReturn()
		case 15:
			return false
		case 16:
			fmt.Fprintln(c.out, "Goodbye!")
			return true
		default:
			fmt.Fprintln(c.out, "Invalid choice, please try again.")
		}
	}
}

func (c *Console) addBook() {
	title := c.prompt("Title: ")
	author := c.prompt("Author: ")
	genre := c.prompt("Genre: ")
	isbn := c.promptValid("ISBN: ", ValidISBN)
	if isbn == "" {
		return
	}
	copies, ok := c.promptInt("Number of copies: ")
	if !ok || copies < 1 {
		fmt.Fprintln(c.out, "A book needs at least one copy.")
		return
	}

	id, err := c.svc.AddBook(&library.Book{
		Title:       title,
		Author:      author,
		Genre:       genre,
		ISBN:        isbn,
		TotalCopies: copies,
	})
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Book added with ID %d.\n", id)
}

func (c *Console) findBookByID() {
	bookID, ok := c.promptInt64("Book ID: ")
	if !ok {
		return
	}
	book, err := c.svc.GetBookByID(bookID)
	if err != nil {
		c.fail(err)
		return
	}
	c.printBook(book)
}

// updateBook rewrites every field of an existing book. Blank input keeps the
// current value.
func (c *Console) updateBook() {
	bookID, ok := c.promptInt64("Book ID: ")
	if !ok {
		return
	}
	book, err := c.svc.GetBookByID(bookID)
	if err != nil {
		c.fail(err)
		return
	}
	c.printBook(book)
	fmt.Fprintln(c.out, "Press Enter to keep the current value.")

	if v := c.prompt(fmt.Sprintf("Title [%s]: ", book.Title)); v != "" {
		book.Title = v
	}
	if v := c.prompt(fmt.Sprintf("Author [%s]: ", book.Author)); v != "" {
		book.Author = v
	}
	if v := c.prompt(fmt.Sprintf("Genre [%s]: ", book.Genre)); v != "" {
		book.Genre = v
	}
	if v := c.prompt(fmt.Sprintf("ISBN [%s]: ", book.ISBN)); v != "" {
		book.ISBN = v
	}
	if v := c.prompt(fmt.Sprintf("Total copies [%d]: ", book.TotalCopies)); v != "" {
		total, err := strconv.Atoi(v)
		if err != nil || total < 1 {
			fmt.Fprintln(c.out, "Invalid copy count.")
			return
		}
		// Keep the issued-copy delta intact when resizing the holding.
		issued := book.TotalCopies - book.AvailableCopies
		if total < issued {
			fmt.Fprintf(c.out, "Cannot drop below %d copies currently issued.\n", issued)
			return
		}
		book.TotalCopies = total
		book.AvailableCopies = total - issued
	}
	book.Available = book.AvailableCopies > 0

	if err := c.svc.UpdateBook(book); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "Book updated.")
}

// updateBookField updates a single book field through the typed update
// variants.
func (c *Console) updateBookField() {
	bookID, ok := c.promptInt64("Book ID: ")
	if !ok {
		return
	}
	fmt.Fprintln(c.out, "1. Title")
	fmt.Fprintln(c.out, "2. Author")
	fmt.Fprintln(c.out, "3. Genre")
	fmt.Fprintln(c.out, "4. ISBN")
	fmt.Fprintln(c.out, "5. Total copies")

	var upd library.BookUpdate
	switch c.promptChoice() {
	case 1:
		upd = library.SetTitle(c.prompt("New title: "))
	case 2:
		upd = library.SetAuthor(c.prompt("New author: "))
	case 3:
		upd = library.SetGenre(c.prompt("New genre: "))
	case 4:
		isbn := c.promptValid("New ISBN: ", ValidISBN)
		if isbn == "" {
			return
		}
		upd = library.SetISBN(isbn)
	case 5:
		total, ok := c.promptInt("New total copies: ")
		if !ok {
			return
		}
		upd = library.SetTotalCopies(total)
	default:
		fmt.Fprintln(c.out, "Invalid choice.")
		return
	}

	if err := c.svc.UpdateBookField(bookID, upd); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "Book updated.")
}

func (c *Console) removeBook() {
	bookID, ok := c.promptInt64("Book ID to remove: ")
	if !ok {
		return
	}
	if err := c.svc.DeleteBook(bookID); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "Book removed.")
}

func (c *Console) viewAllBorrowedBooks() {
	books, err := c.svc.AllBorrowedBooks()
	if err != nil {
		c.fail(err)
		return
	}
	if len(books) == 0 {
		fmt.Fprintln(c.out, "No books are currently on loan.")
		return
	}
	c.printBooks(books)
}

// issueToMember borrows a book on a member's behalf.
func (c *Console) issueToMember() {
	memberID, ok := c.promptInt64("Member ID: ")
	if !ok {
		return
	}
	c.borrowBook(memberID)
}

// acceptReturn closes a member's loan on their behalf.
func (c *Console) acceptReturn() {
	memberID, ok := c.promptInt64("Member ID: ")
	if !ok {
		return
	}
	c.returnBook(memberID)
}
