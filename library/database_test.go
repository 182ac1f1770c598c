package library

import (
	"path/filepath"
	"testing"
)

// tempDB opens a fresh database in a per-test temp dir.
func tempDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// mustAddBook seeds a book with every copy on the shelf.
func mustAddBook(t *testing.T, db *Database, title string, copies int) int64 {
	t.Helper()
	id, err := db.AddBook(&Book{
		Title:           title,
		Author:          "Test Author",
		Genre:           "Fiction",
		ISBN:            "978-0000000000",
		TotalCopies:     copies,
		AvailableCopies: copies,
	})
	if err != nil {
		t.Fatalf("AddBook(%q): %v", title, err)
	}
	return id
}

// mustAddMember seeds a member account. The password column holds an opaque
// hash as far as the repository is concerned.
func mustAddMember(t *testing.T, db *Database, username string) int64 {
	t.Helper()
	id, err := db.AddUser(&User{
		Username:     username,
		PasswordHash: "x",
		Role:         RoleMember,
		Firstname:    "Test",
		Surname:      "Member",
		Email:        username + "@example.com",
		PhoneNumber:  "+12025550100",
		Address: Address{
			Street: "1 Main St", City: "Springfield", Pincode: "12345",
			State: "IL", Country: "USA",
		},
	})
	if err != nil {
		t.Fatalf("AddUser(%q): %v", username, err)
	}
	return id
}

func TestNewDatabaseCreatesSchema(t *testing.T) {
	db := tempDB(t)

	books, err := db.GetAllBooks()
	if err != nil {
		t.Fatalf("GetAllBooks on empty db: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("expected empty catalog, got %d books", len(books))
	}
	users, err := db.GetAllUsers()
	if err != nil {
		t.Fatalf("GetAllUsers on empty db: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %d", len(users))
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.db")

	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	mustAddBook(t, db, "Persistent", 1)
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening must not re-run migrations or lose data.
	db2, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db2.Close()

	books, err := db2.GetAllBooks()
	if err != nil {
		t.Fatalf("GetAllBooks after reopen: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Persistent" {
		t.Fatalf("expected seeded book to survive reopen, got %+v", books)
	}
}

func TestNewDatabaseCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "library.db")
	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("NewDatabase with missing parent dirs: %v", err)
	}
	db.Close()
}
