package library

import (
	"log/slog"
	"strings"
)

// Mailer delivers password-reset verification codes. Delivery is
// fire-and-forget: the service reports send errors but offers no delivery
// guarantee.
type Mailer interface {
	SendVerificationCode(to, code string) error
}

// Options configures a Service.
type Options struct {
	Mailer     Mailer       // nil disables password reset by email
	Logger     *slog.Logger // nil falls back to slog.Default()
	BcryptCost int          // 0 falls back to DefaultBcryptCost
}

// DefaultBcryptCost matches the cost the original credential store used.
const DefaultBcryptCost = 12

// Service applies the business rules in front of the repositories: existence
// checks, role restrictions, credential hashing, and the integrity rules
// around deletion.
type Service struct {
	db     *Database
	mailer Mailer
	log    *slog.Logger
	cost   int
}

// NewService wires a Service over an open database.
func NewService(db *Database, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &Service{db: db, mailer: opts.Mailer, log: logger, cost: cost}
}

// ---------------------------------------------------------------------------
// Authentication
// ---------------------------------------------------------------------------

// Authenticate verifies a username/password pair and returns the account.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(username, password string) (*User, error) {
	user, err := s.db.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := checkPassword(password, user.PasswordHash); err != nil {
		s.log.Warn("failed login attempt", "username", username)
		return nil, err
	}
	return user, nil
}

// BeginPasswordReset generates a verification code and emails it to the
// account's address. The code is returned so the console can compare it
// against the user's input.
func (s *Service) BeginPasswordReset(username string) (string, error) {
	user, err := s.db.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if s.mailer == nil {
		return "", invalid("password reset by email is not configured")
	}
	code, err := generateVerificationCode()
	if err != nil {
		return "", err
	}
	if err := s.mailer.SendVerificationCode(user.Email, code); err != nil {
		s.log.Error("verification code delivery failed", "user_id", user.UserID, "error", err)
		return "", err
	}
	s.log.Info("verification code sent", "user_id", user.UserID)
	return code, nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// RegisterMember creates a member account with a hashed password.
func (s *Service) RegisterMember(u *User, password string) (int64, error) {
	u.Role = RoleMember
	u.AdminType = ""
	return s.register(u, password)
}

// RegisterAdmin creates an administrator account. Only the super
// administrator may add administrators.
func (s *Service) RegisterAdmin(actor *User, u *User, password string, adminType AdminType) (int64, error) {
	if actor == nil || !actor.IsSuperAdmin() {
		return 0, invalid("only the super administrator can add administrators")
	}
	if adminType == AdminSuper {
		// There is exactly one super administrator, created at seed time.
		return 0, ErrSuperAdmin
	}
	u.Role = RoleAdmin
	u.AdminType = adminType
	return s.register(u, password)
}

// SeedSuperAdmin bootstraps the single super administrator account. It fails
// once any administrator exists, so re-running a seed is harmless only when
// pointed at a fresh database.
func (s *Service) SeedSuperAdmin(u *User, password string) (int64, error) {
	admins, err := s.db.GetAdmins()
	if err != nil {
		return 0, err
	}
	if len(admins) > 0 {
		return 0, ErrSuperAdmin
	}
	u.Role = RoleAdmin
	u.AdminType = AdminSuper
	return s.register(u, password)
}

func (s *Service) register(u *User, password string) (int64, error) {
	if strings.TrimSpace(u.Username) == "" {
		return 0, invalid("username must not be empty")
	}
	exists, err := s.db.UserExists(u.Username)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrUsernameTaken
	}
	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return 0, err
	}
	u.PasswordHash = hash

	id, err := s.db.AddUser(u)
	if err != nil {
		return 0, err
	}
	s.log.Info("user registered", "user_id", id, "role", u.Role)
	return id, nil
}

// GetUserByID fetches a user, failing with not-found for unknown IDs.
func (s *Service) GetUserByID(userID int64) (*User, error) {
	if userID <= 0 {
		return nil, invalid("valid user ID required")
	}
	return s.db.GetUserByID(userID)
}

// GetUserByUsername fetches a user by unique username.
func (s *Service) GetUserByUsername(username string) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, invalid("username must not be empty")
	}
	return s.db.GetUserByUsername(strings.TrimSpace(username))
}

// ListUsers returns every account.
func (s *Service) ListUsers() ([]*User, error) { return s.db.GetAllUsers() }

// ListAdmins returns administrator accounts.
func (s *Service) ListAdmins() ([]*User, error) { return s.db.GetAdmins() }

// ListMembers returns member accounts.
func (s *Service) ListMembers() ([]*User, error) { return s.db.GetMembers() }

// UpdateProfile rewrites a user's profile and address.
func (s *Service) UpdateProfile(u *User) error {
	if u == nil || u.UserID <= 0 {
		return invalid("valid user required for update")
	}
	if _, err := s.db.GetUserByID(u.UserID); err != nil {
		return err
	}
	return s.db.UpdateUser(u)
}

// RenameUser changes an account's unique username.
func (s *Service) RenameUser(userID int64, newUsername string) error {
	newUsername = strings.TrimSpace(newUsername)
	if userID <= 0 || newUsername == "" {
		return invalid("valid user ID and username required")
	}
	if _, err := s.db.GetUserByID(userID); err != nil {
		return err
	}
	return s.db.UpdateUsername(userID, newUsername)
}

// ChangePassword hashes and stores a new password.
func (s *Service) ChangePassword(userID int64, newPassword string) error {
	if userID <= 0 {
		return invalid("valid user ID required")
	}
	if _, err := s.db.GetUserByID(userID); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword, s.cost)
	if err != nil {
		return err
	}
	if err := s.db.UpdatePassword(userID, hash); err != nil {
		return err
	}
	s.log.Info("password updated", "user_id", userID)
	return nil
}

// ChangeRole switches an account between member and administrator. The super
// administrator's role is immutable. Promotion to administrator purges the
// account's borrow ledger, since administrators cannot hold loans.
func (s *Service) ChangeRole(userID int64, role Role) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user.IsSuperAdmin() {
		return ErrSuperAdmin
	}
	if user.Role == role {
		return invalid("user is already a %s", role)
	}
	adminType := AdminType("")
	if role == RoleAdmin {
		adminType = AdminStandard
	}
	return s.db.UpdateRole(userID, role, adminType)
}

// ChangeAdminType switches an administrator's sub-type. The super
// administrator cannot be demoted, and a second super administrator cannot
// be minted.
func (s *Service) ChangeAdminType(userID int64, adminType AdminType) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return invalid("user %d is not an administrator", userID)
	}
	if user.IsSuperAdmin() {
		return ErrSuperAdmin
	}
	if adminType == AdminSuper {
		return ErrSuperAdmin
	}
	if user.AdminType == adminType {
		return invalid("administrator is already %s", adminType)
	}
	return s.db.UpdateAdminType(userID, adminType)
}

// UpdateMemberField applies one closed-variant profile update to a member.
func (s *Service) UpdateMemberField(userID int64, upd MemberUpdate) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user.Role != RoleMember {
		return invalid("user %d is not a member", userID)
	}
	return s.db.UpdateMemberField(userID, upd)
}

// UpdateAddressField applies one closed-variant update to a user's address.
func (s *Service) UpdateAddressField(userID int64, upd AddressUpdate) error {
	if _, err := s.GetUserByID(userID); err != nil {
		return err
	}
	return s.db.UpdateAddressField(userID, upd)
}

// DeleteUser removes an account together with its transactions and address.
// The super administrator can never be deleted.
func (s *Service) DeleteUser(userID int64) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user.IsSuperAdmin() {
		return ErrSuperAdmin
	}
	if err := s.db.DeleteUser(userID); err != nil {
		return err
	}
	s.log.Info("user deleted", "user_id", userID, "role", user.Role)
	return nil
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

// AddBook validates and inserts a new catalog entry. A freshly added book
// has every copy on the shelf.
func (s *Service) AddBook(b *Book) (int64, error) {
	if b == nil || strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Author) == "" {
		return 0, invalid("book title and author must not be empty")
	}
	if b.TotalCopies < 1 {
		return 0, invalid("a book needs at least one copy")
	}
	b.AvailableCopies = b.TotalCopies
	id, err := s.db.AddBook(b)
	if err != nil {
		return 0, err
	}
	s.log.Info("book added", "book_id", id, "title", b.Title)
	return id, nil
}

// GetBookByID fetches one book.
func (s *Service) GetBookByID(bookID int64) (*Book, error) {
	if bookID <= 0 {
		return nil, invalid("valid book ID required")
	}
	return s.db.GetBookByID(bookID)
}

// GetBookByTitle fetches one book by exact title.
func (s *Service) GetBookByTitle(title string) (*Book, error) {
	if strings.TrimSpace(title) == "" {
		return nil, invalid("title must not be empty")
	}
	return s.db.GetBookByTitle(title)
}

// ListBooks returns the whole catalog.
func (s *Service) ListBooks() ([]*Book, error) { return s.db.GetAllBooks() }

// ListAvailableBooks returns books with copies on the shelf.
func (s *Service) ListAvailableBooks() ([]*Book, error) { return s.db.GetAvailableBooks() }

// BooksByGenre filters the catalog by genre.
func (s *Service) BooksByGenre(genre string) ([]*Book, error) {
	if strings.TrimSpace(genre) == "" {
		return nil, invalid("genre must not be empty")
	}
	return s.db.GetBooksByGenre(genre)
}

// BooksByAuthor filters the catalog by author.
func (s *Service) BooksByAuthor(author string) ([]*Book, error) {
	if strings.TrimSpace(author) == "" {
		return nil, invalid("author must not be empty")
	}
	return s.db.GetBooksByAuthor(author)
}

// SearchBooks runs a keyword search over title, author, and genre.
func (s *Service) SearchBooks(keyword string) ([]*Book, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, invalid("search keyword must not be empty")
	}
	return s.db.SearchBooks(keyword)
}

// UpdateBook rewrites a book after checking it exists and that the copy
// counts stay consistent.
func (s *Service) UpdateBook(b *Book) error {
	if b == nil || b.BookID <= 0 {
		return invalid("book and valid ID required for update")
	}
	if b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return invalid("available copies must be between 0 and total copies")
	}
	if _, err := s.db.GetBookByID(b.BookID); err != nil {
		return err
	}
	return s.db.UpdateBook(b)
}

// UpdateBookField applies one closed-variant update to a book.
func (s *Service) UpdateBookField(bookID int64, upd BookUpdate) error {
	if _, err := s.GetBookByID(bookID); err != nil {
		return err
	}
	return s.db.UpdateBookField(bookID, upd)
}

// DeleteBook removes a book. Deletion is refused while any copy is out on
// loan.
func (s *Service) DeleteBook(bookID int64) error {
	book, err := s.GetBookByID(bookID)
	if err != nil {
		return err
	}
	if book.AvailableCopies != book.TotalCopies {
		return ErrCopiesOutstanding
	}
	if err := s.db.DeleteBook(bookID); err != nil {
		return err
	}
	s.log.Info("book deleted", "book_id", bookID, "title", book.Title)
	return nil
}

// BorrowedBooksByUser lists the books a member currently holds.
func (s *Service) BorrowedBooksByUser(userID int64) ([]*Book, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, ErrAdminCannotBorrow
	}
	return s.db.GetBorrowedBooksByUser(userID)
}

// AllBorrowedBooks lists every book with at least one copy on loan.
func (s *Service) AllBorrowedBooks() ([]*Book, error) { return s.db.GetAllBorrowedBooks() }
