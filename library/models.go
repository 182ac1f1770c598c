package library

// Role distinguishes administrators from ordinary members.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// AdminType is the administrator sub-type. A super administrator manages
// other administrators and can never be deleted.
type AdminType string

const (
	AdminSuper    AdminType = "super"
	AdminStandard AdminType = "standard"
)

// Gender of a registered user.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Status of a borrow transaction.
type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
)

// Book represents a title in the catalog together with its copy counts.
// Available is kept in step with AvailableCopies > 0 by every write path.
type Book struct {
	BookID          int64  `db:"book_id" json:"book_id"`
	Title           string `db:"title" json:"title"`
	Author          string `db:"author" json:"author"`
	Genre           string `db:"genre" json:"genre"`
	ISBN            string `db:"isbn" json:"isbn"`
	Available       bool   `db:"is_available" json:"is_available"`
	TotalCopies     int    `db:"number_of_total_copies" json:"number_of_total_copies"`
	AvailableCopies int    `db:"number_of_available_copies" json:"number_of_available_copies"`
}

// User is a registered account. Role discriminates the member/administrator
// variants; AdminType is only meaningful when Role is RoleAdmin.
type User struct {
	UserID       int64     `db:"user_id" json:"user_id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password" json:"-"`
	Role         Role      `db:"user_type" json:"user_type"`
	AdminType    AdminType `db:"admin_type" json:"admin_type,omitempty"`
	Firstname    string    `db:"firstname" json:"firstname"`
	Surname      string    `db:"surname" json:"surname"`
	DateOfBirth  Date      `db:"date_of_birth" json:"date_of_birth"`
	Gender       Gender    `db:"gender" json:"gender"`
	Email        string    `db:"email" json:"email"`
	PhoneNumber  string    `db:"phone_number" json:"phone_number"`

	Address Address `db:"-" json:"address"`
}

// IsAdmin reports whether the user carries the administrator role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsSuperAdmin reports whether the user is the non-deletable super
// administrator variant.
func (u *User) IsSuperAdmin() bool { return u.Role == RoleAdmin && u.AdminType == AdminSuper }

// Address is owned one-to-one by a user.
type Address struct {
	AddressID int64  `db:"address_id" json:"address_id"`
	UserID    int64  `db:"user_id" json:"user_id"`
	Street    string `db:"street" json:"street"`
	City      string `db:"city" json:"city"`
	Pincode   string `db:"pincode" json:"pincode"`
	State     string `db:"state" json:"state"`
	Country   string `db:"country" json:"country"`
}

// Transaction is one borrow event. ReturnDate is set exactly when Status
// becomes StatusReturned.
type Transaction struct {
	TransactionID int64    `db:"transaction_id" json:"transaction_id"`
	UserID        int64    `db:"user_id" json:"user_id"`
	BookID        int64    `db:"book_id" json:"book_id"`
	BorrowDate    Date     `db:"borrow_date" json:"borrow_date"`
	ReturnDate    NullDate `db:"return_date" json:"return_date"`
	Status        Status   `db:"status" json:"status"`
}

// BorrowingHistory is the read-only projection of a transaction joined with
// the borrowed book's title.
type BorrowingHistory struct {
	TransactionID int64    `db:"transaction_id" json:"transaction_id"`
	UserID        int64    `db:"user_id" json:"user_id"`
	BookID        int64    `db:"book_id" json:"book_id"`
	Title         string   `db:"title" json:"title"`
	BorrowDate    Date     `db:"borrow_date" json:"borrow_date"`
	ReturnDate    NullDate `db:"return_date" json:"return_date"`
	Status        Status   `db:"status" json:"status"`
}
