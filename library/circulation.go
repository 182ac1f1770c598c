package library

// Circulation: the borrow/return contract. Precondition checks live here;
// the atomic insert+decrement and update+increment pairs live in
// transactions.go.

// Borrow lends a book to a member.
//
// Preconditions: the user exists and is not an administrator, the book
// exists with at least one available copy, the borrow date is not in the
// future, and a pre-supplied return date is not before the borrow date.
// The insert and the copy decrement land atomically or not at all.
func (s *Service) Borrow(userID, bookID int64, borrowDate Date, returnDate NullDate) (int64, error) {
	if userID <= 0 || bookID <= 0 {
		return 0, invalid("valid user ID and book ID required")
	}
	user, err := s.db.GetUserByID(userID)
	if err != nil {
		return 0, err
	}
	if user.IsAdmin() {
		return 0, ErrAdminCannotBorrow
	}
	if _, err := s.db.GetBookByID(bookID); err != nil {
		return 0, err
	}
	if borrowDate.IsZero() {
		return 0, invalid("borrow date must not be empty")
	}
	if borrowDate.After(Today()) {
		return 0, invalid("borrow date cannot be in the future")
	}
	if returnDate.Valid && returnDate.Date.Before(borrowDate) {
		return 0, invalid("return date cannot be before borrow date")
	}

	transactionID, err := s.db.BorrowBook(&Transaction{
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: borrowDate,
		ReturnDate: returnDate,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("book borrowed",
		"transaction_id", transactionID, "user_id", userID, "book_id", bookID)
	return transactionID, nil
}

// Return closes a borrow transaction.
//
// Preconditions: the transaction exists, its status is still borrowed, and
// the return date is not before the borrow date. The status flip and the
// copy increment land atomically or not at all.
func (s *Service) Return(transactionID int64, returnDate Date) error {
	if transactionID <= 0 {
		return invalid("valid transaction ID required")
	}
	if returnDate.IsZero() {
		return invalid("return date must not be empty")
	}
	t, err := s.db.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}
	if t.Status == StatusReturned {
		return ErrAlreadyReturned
	}
	if returnDate.Before(t.BorrowDate) {
		return invalid("return date cannot be before borrow date")
	}

	if err := s.db.ReturnBook(transactionID, returnDate); err != nil {
		return err
	}
	s.log.Info("book returned",
		"transaction_id", transactionID, "user_id", t.UserID, "book_id", t.BookID)
	return nil
}

// GetTransactionByID fetches one transaction.
func (s *Service) GetTransactionByID(transactionID int64) (*Transaction, error) {
	if transactionID <= 0 {
		return nil, invalid("valid transaction ID required")
	}
	return s.db.GetTransactionByID(transactionID)
}

// ListTransactions returns the full ledger.
func (s *Service) ListTransactions() ([]*Transaction, error) { return s.db.GetAllTransactions() }

// ListActiveTransactions returns open borrows.
func (s *Service) ListActiveTransactions() ([]*Transaction, error) {
	return s.db.GetActiveTransactions()
}

// TransactionsByUser returns a user's ledger.
func (s *Service) TransactionsByUser(userID int64) ([]*Transaction, error) {
	if userID <= 0 {
		return nil, invalid("valid user ID required")
	}
	return s.db.GetTransactionsByUserID(userID)
}

// BorrowingHistory returns a member's ledger joined with book titles.
// Administrators have no borrowing history by construction.
func (s *Service) BorrowingHistory(userID int64) ([]*BorrowingHistory, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, ErrAdminCannotBorrow
	}
	return s.db.GetBorrowingHistoryByUserID(userID)
}

// ActiveBorrowID finds the open transaction for a user/book pair, used by
// the console's return flow.
func (s *Service) ActiveBorrowID(userID, bookID int64) (int64, error) {
	if userID <= 0 || bookID <= 0 {
		return 0, invalid("valid user ID and book ID required")
	}
	return s.db.GetActiveTransactionID(userID, bookID)
}

// IsBookBorrowedByUser reports whether a user currently holds a book.
func (s *Service) IsBookBorrowedByUser(userID, bookID int64) (bool, error) {
	_, err := s.ActiveBorrowID(userID, bookID)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
