package library

import (
	"fmt"
	"strings"
)

// Book repository: row mapping is driven by the `db` tags on Book.

const bookColumns = `book_id, title, author, genre, isbn, is_available,
        number_of_total_copies, number_of_available_copies`

// AddBook inserts a new book and returns its generated ID. The availability
// flag is derived from the available-copy count.
func (d *Database) AddBook(b *Book) (int64, error) {
	res, err := d.addBookStmt.Exec(
		b.Title, b.Author, b.Genre, b.ISBN,
		b.AvailableCopies > 0, b.TotalCopies, b.AvailableCopies,
	)
	if err != nil {
		return 0, fmt.Errorf("add book: %w", err)
	}
	return res.LastInsertId()
}

// GetBookByID fetches one book.
func (d *Database) GetBookByID(bookID int64) (*Book, error) {
	var b Book
	err := d.db.Get(&b, `SELECT `+bookColumns+` FROM books WHERE book_id=?`, bookID)
	if err != nil {
		return nil, getOr(err, "book", bookID)
	}
	return &b, nil
}

// GetBookByTitle fetches the first book with an exactly matching title.
func (d *Database) GetBookByTitle(title string) (*Book, error) {
	var b Book
	err := d.db.Get(&b, `SELECT `+bookColumns+` FROM books WHERE title=?`, title)
	if err != nil {
		return nil, getOr(err, "book", title)
	}
	return &b, nil
}

// GetAllBooks returns the whole catalog ordered by ID.
func (d *Database) GetAllBooks() ([]*Book, error) {
	var books []*Book
	err := d.db.Select(&books, `SELECT `+bookColumns+` FROM books ORDER BY book_id`)
	return books, err
}

// GetAvailableBooks returns books with at least one copy on the shelf.
func (d *Database) GetAvailableBooks() ([]*Book, error) {
	var books []*Book
	err := d.db.Select(&books,
		`SELECT `+bookColumns+` FROM books WHERE number_of_available_copies > 0 ORDER BY book_id`)
	return books, err
}

// GetBooksByGenre returns books filtered by exact genre.
func (d *Database) GetBooksByGenre(genre string) ([]*Book, error) {
	var books []*Book
	err := d.db.Select(&books,
		`SELECT `+bookColumns+` FROM books WHERE genre=? COLLATE NOCASE ORDER BY book_id`, genre)
	return books, err
}

// GetBooksByAuthor returns books filtered by exact author.
func (d *Database) GetBooksByAuthor(author string) ([]*Book, error) {
	var books []*Book
	err := d.db.Select(&books,
		`SELECT `+bookColumns+` FROM books WHERE author=? COLLATE NOCASE ORDER BY book_id`, author)
	return books, err
}

// SearchBooks leverages FTS5 over title, author, and genre. The keyword is
// quoted and prefix-matched so raw user input never reaches the MATCH parser.
func (d *Database) SearchBooks(keyword string) ([]*Book, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []*Book{}, nil
	}
	query := `"` + strings.ReplaceAll(keyword, `"`, `""`) + `"*`

	var books []*Book
	err := d.db.Select(&books, `
        SELECT b.book_id, b.title, b.author, b.genre, b.isbn, b.is_available,
               b.number_of_total_copies, b.number_of_available_copies
        FROM books_fts fts
        JOIN books b ON b.book_id = fts.rowid
        WHERE books_fts MATCH ?
        ORDER BY rank;`, query)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

// UpdateBook rewrites every mutable column of a book.
func (d *Database) UpdateBook(b *Book) error {
	res, err := d.db.Exec(
		`UPDATE books SET title=?, author=?, genre=?, isbn=?, is_available=?,
             number_of_total_copies=?, number_of_available_copies=?
         WHERE book_id=?`,
		b.Title, b.Author, b.Genre, b.ISBN,
		b.AvailableCopies > 0, b.TotalCopies, b.AvailableCopies, b.BookID,
	)
	if err != nil {
		return fmt.Errorf("update book %d: %w", b.BookID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("book", b.BookID)
	}
	return nil
}

// DeleteBook removes a book row. Business preconditions (no outstanding
// loans) are enforced by the service layer.
func (d *Database) DeleteBook(bookID int64) error {
	res, err := d.db.Exec(`DELETE FROM books WHERE book_id=?`, bookID)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", bookID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("book", bookID)
	}
	return nil
}

// GetBorrowedBooksByUser returns the books a user currently has on loan.
func (d *Database) GetBorrowedBooksByUser(userID int64) ([]*Book, error) {
	var books []*Book
	err := d.db.Select(&books, `
        SELECT b.book_id, b.title, b.author, b.genre, b.isbn, b.is_available,
               b.number_of_total_copies, b.number_of_available_copies
        FROM books b
        JOIN transactions t ON t.book_id = b.book_id
        WHERE t.user_id = ? AND t.status = 'borrowed'
        ORDER BY t.transaction_id`, userID)
	return books, err
}

// GetAllBorrowedBooks returns every book with at least one copy on loan.
func (d *Database) GetAllBorrowedBooks() ([]*Book, error) {
	var books []*Book
	err := d.db.Select(&books,
		`SELECT `+bookColumns+` FROM books
         WHERE number_of_available_copies < number_of_total_copies
         ORDER BY book_id`)
	return books, err
}

// SetAvailableCopies pins the available-copy count directly, keeping the
// availability flag in step. The schema CHECK rejects counts outside
// [0, total].
func (d *Database) SetAvailableCopies(bookID int64, copies int) error {
	res, err := d.db.Exec(
		`UPDATE books SET number_of_available_copies=?, is_available=? WHERE book_id=?`,
		copies, copies > 0, bookID)
	if err != nil {
		return fmt.Errorf("set available copies for book %d: %w", bookID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("book", bookID)
	}
	return nil
}
