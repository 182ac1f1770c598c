package library

import (
	"errors"
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func TestBorrowDecrementsCopies(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "reader")
	bookID := mustAddBook(t, db, "Dune", 3)

	txID, err := db.BorrowBook(&Transaction{
		UserID: userID, BookID: bookID, BorrowDate: Today(),
	})
	if err != nil {
		t.Fatalf("BorrowBook: %v", err)
	}
	if txID <= 0 {
		t.Fatalf("expected positive transaction ID, got %d", txID)
	}

	book, err := db.GetBookByID(bookID)
	if err != nil {
		t.Fatalf("GetBookByID: %v", err)
	}
	if book.AvailableCopies != 2 {
		t.Fatalf("expected 2 available copies, got %d", book.AvailableCopies)
	}
	if !book.Available {
		t.Fatal("book should still be available with copies left")
	}

	tx, err := db.GetTransactionByID(txID)
	if err != nil {
		t.Fatalf("GetTransactionByID: %v", err)
	}
	if tx.Status != StatusBorrowed {
		t.Fatalf("expected status %q, got %q", StatusBorrowed, tx.Status)
	}
	if tx.ReturnDate.Valid {
		t.Fatal("new borrow must not carry a return date")
	}
}

func TestBorrowLastCopyClearsAvailability(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "reader")
	bookID := mustAddBook(t, db, "Solaris", 1)

	if _, err := db.BorrowBook(&Transaction{UserID: userID, BookID: bookID, BorrowDate: Today()}); err != nil {
		t.Fatalf("BorrowBook: %v", err)
	}
	book, err := db.GetBookByID(bookID)
	if err != nil {
		t.Fatalf("GetBookByID: %v", err)
	}
	if book.AvailableCopies != 0 || book.Available {
		t.Fatalf("expected unavailable with 0 copies, got available=%v copies=%d",
			book.Available, book.AvailableCopies)
	}
}

func TestBorrowWithNoCopiesFailsCleanly(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "reader")
	other := mustAddMember(t, db, "other")
	bookID := mustAddBook(t, db, "Rare Book", 1)

	if _, err := db.BorrowBook(&Transaction{UserID: userID, BookID: bookID, BorrowDate: Today()}); err != nil {
		t.Fatalf("first borrow: %v", err)
	}
	_, err := db.BorrowBook(&Transaction{UserID: other, BookID: bookID, BorrowDate: Today()})
	if !errors.Is(err, ErrNoAvailableCopies) {
		t.Fatalf("expected ErrNoAvailableCopies, got %v", err)
	}

	// The failed borrow must not leave a transaction row behind.
	txs, err := db.GetTransactionsByUserID(other)
	if err != nil {
		t.Fatalf("GetTransactionsByUserID: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("failed borrow left %d transaction(s)", len(txs))
	}
}

func TestBorrowUnknownBook(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "reader")

	_, err := db.BorrowBook(&Transaction{UserID: userID, BookID: 999, BorrowDate: Today()})
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestReturnRestoresCopies(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "reader")
	bookID := mustAddBook(t, db, "Foundation", 3)

	txID, err := db.BorrowBook(&Transaction{UserID: userID, BookID: bookID, BorrowDate: Today()})
	if err != nil {
		t.Fatalf("BorrowBook: %v", err)
	}
	if err := db.ReturnBook(txID, Today()); err != nil {
		t.Fatalf("ReturnBook: %v", err)
	}

	book, err := db.GetBookByID(bookID)
	if err != nil {
		t.Fatalf("GetBookByID: %v", err)
	}
	if book.AvailableCopies != 3 {
		t.Fatalf("expected copy count restored to 3, got %d", book.AvailableCopies)
	}

	tx, err := db.GetTransactionByID(txID)
	if err != nil {
		t.Fatalf("GetTransactionByID: %v", err)
	}
	if tx.Status != StatusReturned {
		t.Fatalf("expected status %q, got %q", StatusReturned, tx.Status)
	}
	if !tx.ReturnDate.Valid || !tx.ReturnDate.Date.Equal(Today()) {
		t.Fatalf("expected return date set to today, got %+v", tx.ReturnDate)
	}
}

func TestDoubleReturnIsRejected(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "reader")
	bookID := mustAddBook(t, db, "Hyperion", 2)

	txID, err := db.BorrowBook(&Transaction{UserID: userID, BookID: bookID, BorrowDate: Today()})
	if err != nil {
		t.Fatalf("BorrowBook: %v", err)
	}
	if err := db.ReturnBook(txID, Today()); err != nil {
		t.Fatalf("first return: %v", err)
	}
	if err := db.ReturnBook(txID, Today()); !errors.Is(err, ErrAlreadyReturned) {
		t.Fatalf("expected ErrAlreadyReturned, got %v", err)
	}

	// The rejected return must not bump the copy count a second time.
	book, err := db.GetBookByID(bookID)
	if err != nil {
		t.Fatalf("GetBookByID: %v", err)
	}
	if book.AvailableCopies != 2 {
		t.Fatalf("expected 2 copies after double return, got %d", book.AvailableCopies)
	}
}

func TestGetActiveTransactionID(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "reader")
	bookID := mustAddBook(t, db, "Ubik", 2)

	txID, err := db.BorrowBook(&Transaction{UserID: userID, BookID: bookID, BorrowDate: Today()})
	if err != nil {
		t.Fatalf("BorrowBook: %v", err)
	}
	got, err := db.GetActiveTransactionID(userID, bookID)
	if err != nil {
		t.Fatalf("GetActiveTransactionID: %v", err)
	}
	if got != txID {
		t.Fatalf("expected transaction %d, got %d", txID, got)
	}

	if err := db.ReturnBook(txID, Today()); err != nil {
		t.Fatalf("ReturnBook: %v", err)
	}
	if _, err := db.GetActiveTransactionID(userID, bookID); !IsNotFound(err) {
		t.Fatalf("expected not-found after return, got %v", err)
	}
}

func TestBorrowingHistoryIncludesTitles(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "reader")
	bookID := mustAddBook(t, db, "Neuromancer", 1)

	txID, err := db.BorrowBook(&Transaction{UserID: userID, BookID: bookID, BorrowDate: Today()})
	if err != nil {
		t.Fatalf("BorrowBook: %v", err)
	}
	if err := db.ReturnBook(txID, Today()); err != nil {
		t.Fatalf("ReturnBook: %v", err)
	}

	history, err := db.GetBorrowingHistoryByUserID(userID)
	if err != nil {
		t.Fatalf("GetBorrowingHistoryByUserID: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].Title != "Neuromancer" {
		t.Fatalf("expected joined title, got %q", history[0].Title)
	}
	if history[0].Status != StatusReturned {
		t.Fatalf("expected returned status, got %q", history[0].Status)
	}
}

// TestCopyCountInvariant drives random borrow/return sequences against one
// book and checks the available-copy count never leaves [0, total] and always
// matches the model.
func TestCopyCountInvariant(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "property-reader")

	iteration := 0
	rapid.Check(t, func(rt *rapid.T) {
		iteration++
		total := rapid.IntRange(1, 5).Draw(rt, "total")
		bookID := mustAddBook(t, db, fmt.Sprintf("Property %d", iteration), total)

		available := total
		var open []int64
		ops := rapid.SliceOfN(rapid.Bool(), 0, 40).Draw(rt, "ops")
		for _, borrow := range ops {
			if borrow {
				txID, err := db.BorrowBook(&Transaction{
					UserID: userID, BookID: bookID, BorrowDate: Today(),
				})
				if available == 0 {
					if !errors.Is(err, ErrNoAvailableCopies) {
						rt.Fatalf("expected ErrNoAvailableCopies, got %v", err)
					}
				} else {
					if err != nil {
						rt.Fatalf("borrow with %d available: %v", available, err)
					}
					available--
					open = append(open, txID)
				}
			} else if len(open) > 0 {
				txID := open[len(open)-1]
				open = open[:len(open)-1]
				if err := db.ReturnBook(txID, Today()); err != nil {
					rt.Fatalf("return: %v", err)
				}
				available++
			}

			book, err := db.GetBookByID(bookID)
			if err != nil {
				rt.Fatalf("GetBookByID: %v", err)
			}
			if book.AvailableCopies != available {
				rt.Fatalf("model says %d available, db says %d", available, book.AvailableCopies)
			}
			if book.AvailableCopies < 0 || book.AvailableCopies > book.TotalCopies {
				rt.Fatalf("copy count %d outside [0,%d]", book.AvailableCopies, book.TotalCopies)
			}
		}
	})
}
