package library

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Transaction repository. Borrow and return are the two compound writes in
// the system: each pairs a transactions-table write with a copy-count update
// on books inside a single database transaction, so either both land or
// neither is visible.

const transactionColumns = `transaction_id, user_id, book_id, borrow_date, return_date, status`

// BorrowBook records the borrow and decrements the book's available copies
// in one transaction. It returns the new transaction ID.
//
// The availability check runs inside the same transaction: a book with no
// copies left fails with ErrNoAvailableCopies and leaves state unchanged.
func (d *Database) BorrowBook(t *Transaction) (int64, error) {
	var transactionID int64
	err := d.inTx(func(tx *sqlx.Tx) error {
		var available int
		err := tx.Get(&available,
			`SELECT number_of_available_copies FROM books WHERE book_id=?`, t.BookID)
		if err != nil {
			return getOr(err, "book", t.BookID)
		}
		if available < 1 {
			return ErrNoAvailableCopies
		}

		res, err := tx.Exec(
			`INSERT INTO transactions (user_id, book_id, borrow_date, return_date, status)
             VALUES (?,?,?,?,?)`,
			t.UserID, t.BookID, t.BorrowDate, t.ReturnDate, StatusBorrowed,
		)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		if transactionID, err = res.LastInsertId(); err != nil {
			return err
		}

		upd, err := tx.Exec(
			`UPDATE books
             SET number_of_available_copies = number_of_available_copies - 1,
                 is_available = (number_of_available_copies - 1) > 0
             WHERE book_id=?`, t.BookID)
		if err != nil {
			return fmt.Errorf("decrement copies for book %d: %w", t.BookID, err)
		}
		if n, _ := upd.RowsAffected(); n == 0 {
			return notFound("book", t.BookID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return transactionID, nil
}

// ReturnBook marks the transaction returned and increments the book's
// available copies in one transaction. Returning a transaction that is not
// currently borrowed fails with ErrAlreadyReturned and changes nothing.
func (d *Database) ReturnBook(transactionID int64, returnDate Date) error {
	return d.inTx(func(tx *sqlx.Tx) error {
		var row struct {
			BookID int64  `db:"book_id"`
			Status Status `db:"status"`
		}
		err := tx.Get(&row,
			`SELECT book_id, status FROM transactions WHERE transaction_id=?`, transactionID)
		if err != nil {
			return getOr(err, "transaction", transactionID)
		}
		if row.Status != StatusBorrowed {
			return ErrAlreadyReturned
		}

		res, err := tx.Exec(
			`UPDATE transactions SET return_date=?, status=? WHERE transaction_id=?`,
			returnDate, StatusReturned, transactionID)
		if err != nil {
			return fmt.Errorf("update transaction %d: %w", transactionID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound("transaction", transactionID)
		}

		upd, err := tx.Exec(
			`UPDATE books
             SET number_of_available_copies = number_of_available_copies + 1,
                 is_available = 1
             WHERE book_id=?`, row.BookID)
		if err != nil {
			return fmt.Errorf("increment copies for book %d: %w", row.BookID, err)
		}
		if n, _ := upd.RowsAffected(); n == 0 {
			return notFound("book", row.BookID)
		}
		return nil
	})
}

// GetTransactionByID fetches one transaction.
func (d *Database) GetTransactionByID(transactionID int64) (*Transaction, error) {
	var t Transaction
	err := d.db.Get(&t,
		`SELECT `+transactionColumns+` FROM transactions WHERE transaction_id=?`, transactionID)
	if err != nil {
		return nil, getOr(err, "transaction", transactionID)
	}
	return &t, nil
}

// GetAllTransactions returns the full ledger ordered by ID.
func (d *Database) GetAllTransactions() ([]*Transaction, error) {
	var ts []*Transaction
	err := d.db.Select(&ts,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY transaction_id`)
	return ts, err
}

// GetActiveTransactions returns transactions still in borrowed status.
func (d *Database) GetActiveTransactions() ([]*Transaction, error) {
	var ts []*Transaction
	err := d.db.Select(&ts,
		`SELECT `+transactionColumns+` FROM transactions WHERE status=? ORDER BY transaction_id`,
		StatusBorrowed)
	return ts, err
}

// GetTransactionsByUserID returns a user's full ledger.
func (d *Database) GetTransactionsByUserID(userID int64) ([]*Transaction, error) {
	var ts []*Transaction
	err := d.db.Select(&ts,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id=? ORDER BY transaction_id`,
		userID)
	return ts, err
}

// GetBorrowingHistoryByUserID returns the user's transactions joined with
// book titles.
func (d *Database) GetBorrowingHistoryByUserID(userID int64) ([]*BorrowingHistory, error) {
	var history []*BorrowingHistory
	err := d.db.Select(&history, `
        SELECT t.transaction_id, t.user_id, t.book_id, b.title,
               t.borrow_date, t.return_date, t.status
        FROM transactions t
        JOIN books b ON b.book_id = t.book_id
        WHERE t.user_id = ?
        ORDER BY t.transaction_id`, userID)
	return history, err
}

// GetActiveTransactionID finds the open borrow of a book by a user, if any.
func (d *Database) GetActiveTransactionID(userID, bookID int64) (int64, error) {
	var id int64
	err := d.db.Get(&id, `
        SELECT transaction_id FROM transactions
        WHERE user_id=? AND book_id=? AND status=?`,
		userID, bookID, StatusBorrowed)
	if err != nil {
		return 0, getOr(err, "transaction", fmt.Sprintf("user %d, book %d", userID, bookID))
	}
	return id, nil
}

// DeleteUserTransactions bulk-deletes a user's ledger. Used when the owning
// user is removed or promoted to administrator.
func (d *Database) DeleteUserTransactions(userID int64) error {
	_, err := d.db.Exec(`DELETE FROM transactions WHERE user_id=?`, userID)
	if err != nil {
		return fmt.Errorf("delete transactions for user %d: %w", userID, err)
	}
	return nil
}
