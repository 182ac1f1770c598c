package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookCRUD(t *testing.T) {
	db := tempDB(t)

	id, err := db.AddBook(&Book{
		Title:           "Snow Crash",
		Author:          "Neal Stephenson",
		Genre:           "Cyberpunk",
		ISBN:            "978-0553380958",
		TotalCopies:     2,
		AvailableCopies: 2,
	})
	require.NoError(t, err)

	book, err := db.GetBookByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Snow Crash", book.Title)
	assert.Equal(t, "Neal Stephenson", book.Author)
	assert.True(t, book.Available)
	assert.Equal(t, 2, book.AvailableCopies)

	book.Genre = "Science Fiction"
	require.NoError(t, db.UpdateBook(book))
	book, err = db.GetBookByTitle("Snow Crash")
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", book.Genre)

	require.NoError(t, db.DeleteBook(id))
	_, err = db.GetBookByID(id)
	assert.True(t, IsNotFound(err))
}

func TestGetAvailableBooksFiltersEmptyShelves(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "reader")
	onShelf := mustAddBook(t, db, "On Shelf", 2)
	lastCopy := mustAddBook(t, db, "Last Copy", 1)

	_, err := db.BorrowBook(&Transaction{UserID: userID, BookID: lastCopy, BorrowDate: Today()})
	require.NoError(t, err)

	available, err := db.GetAvailableBooks()
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, onShelf, available[0].BookID)

	borrowed, err := db.GetAllBorrowedBooks()
	require.NoError(t, err)
	require.Len(t, borrowed, 1)
	assert.Equal(t, lastCopy, borrowed[0].BookID)
}

func TestGetBooksByGenreIsCaseInsensitive(t *testing.T) {
	db := tempDB(t)
	mustAddBook(t, db, "Dracula", 1)

	books, err := db.GetBooksByGenre("fiction")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dracula", books[0].Title)
}

func TestSearchBooks(t *testing.T) {
	db := tempDB(t)
	mustAddBook(t, db, "The Left Hand of Darkness", 1)
	mustAddBook(t, db, "A Wizard of Earthsea", 1)

	t.Run("matches title keywords", func(t *testing.T) {
		books, err := db.SearchBooks("darkness")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "The Left Hand of Darkness", books[0].Title)
	})

	t.Run("prefix match", func(t *testing.T) {
		books, err := db.SearchBooks("wiza")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "A Wizard of Earthsea", books[0].Title)
	})

	t.Run("matches author", func(t *testing.T) {
		books, err := db.SearchBooks("Test Author")
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("quotes hostile input", func(t *testing.T) {
		books, err := db.SearchBooks(`"; DROP TABLE books; --`)
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("no match", func(t *testing.T) {
		books, err := db.SearchBooks("nonexistent")
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestSearchIndexFollowsUpdatesAndDeletes(t *testing.T) {
	db := tempDB(t)
	id := mustAddBook(t, db, "Old Title", 1)

	book, err := db.GetBookByID(id)
	require.NoError(t, err)
	book.Title = "Brand New Title"
	require.NoError(t, db.UpdateBook(book))

	books, err := db.SearchBooks("brand")
	require.NoError(t, err)
	require.Len(t, books, 1)

	books, err = db.SearchBooks("old")
	require.NoError(t, err)
	assert.Empty(t, books)

	require.NoError(t, db.DeleteBook(id))
	books, err = db.SearchBooks("brand")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestUpdateBookFieldVariants(t *testing.T) {
	db := tempDB(t)
	id := mustAddBook(t, db, "Mutable", 3)

	require.NoError(t, db.UpdateBookField(id, SetTitle("Renamed")))
	require.NoError(t, db.UpdateBookField(id, SetAuthor("New Author")))
	require.NoError(t, db.UpdateBookField(id, SetTotalCopies(5)))

	book, err := db.GetBookByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", book.Title)
	assert.Equal(t, "New Author", book.Author)
	assert.Equal(t, 5, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies)
}

func TestTotalCopiesCannotDropBelowIssued(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "reader")
	id := mustAddBook(t, db, "Popular", 3)

	_, err := db.BorrowBook(&Transaction{UserID: userID, BookID: id, BorrowDate: Today()})
	require.NoError(t, err)

	// 2 available of 3; dropping total to 1 would leave available > total.
	err = db.UpdateBookField(id, SetTotalCopies(1))
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	book, err := db.GetBookByID(id)
	require.NoError(t, err)
	assert.Equal(t, 3, book.TotalCopies)
}
