// Package console implements the interactive menu loop: authentication,
// role-gated member and administrator menus, and all input collection.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"library-management/library"
)

// Console drives the text interface over a Service. All reads go through the
// single scanner so piped input behaves the same as a terminal session.
type Console struct {
	svc *library.Service
	log *slog.Logger

	in          *bufio.Scanner
	out         io.Writer
	interactive bool
	eof         bool // input exhausted; menus unwind instead of re-prompting
}

// New builds a Console on the process stdin/stdout.
func New(svc *library.Service, logger *slog.Logger) *Console {
	c := NewWithIO(svc, logger, os.Stdin, os.Stdout)
	c.interactive = true
	return c
}

// NewWithIO builds a Console over arbitrary streams. Password prompts fall
// back to plain line reads, which is what tests and piped sessions need.
func NewWithIO(svc *library.Service, logger *slog.Logger, in io.Reader, out io.Writer) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{
		svc:         svc,
		log:         logger,
		in:          bufio.NewScanner(in),
		out:         out,
		interactive: isStdin(in),
	}
}

// Run enters the top-level menu and blocks until the user exits. Every exit
// path unwinds back here; nothing below this frame terminates the process.
func (c *Console) Run() {
	fmt.Fprintln(c.out, "========================================")
	fmt.Fprintln(c.out, "   Welcome to the Library Management System")
	fmt.Fprintln(c.out, "========================================")

	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1. Login")
		fmt.Fprintln(c.out, "2. Sign up")
		fmt.Fprintln(c.out, "3. Forgot password")
		fmt.Fprintln(c.out, "4. Exit")

		choice := c.promptChoice()
		if c.eof {
			return
		}
		switch choice {
		case 1:
			if exit := c.login(); exit {
				return
			}
		case 2:
			c.signUp()
		case 3:
			c.forgotPassword()
		case 4:
			fmt.Fprintln(c.out, "Goodbye!")
			return
		default:
			fmt.Fprintln(c.out, "Invalid choice, please try again.")
		}
	}
}

// login authenticates and routes to the role-appropriate menu. It returns
// true when the session chose "exit" rather than "logout".
func (c *Console) login() bool {
	username := c.prompt("Username: ")
	password, err := c.readPassword("Password: ")
	if err != nil {
		c.fail(err)
		return false
	}

	user, err := c.svc.Authenticate(username, password)
	if err != nil {
		c.fail(err)
		return false
	}

	session := uuid.NewString()
	c.log.Info("session started",
		"session_id", session, "user_id", user.UserID, "role", user.Role)
	fmt.Fprintf(c.out, "\nWelcome back, %s %s!\n", user.Firstname, user.Surname)

	var exit bool
	if user.IsAdmin() {
		exit = c.adminMenu(user)
	} else {
		exit = c.memberMenu(user)
	}
	c.log.Info("session ended", "session_id", session, "user_id", user.UserID)
	return exit
}

// signUp registers a new member account from validated console input.
func (c *Console) signUp() {
	fmt.Fprintln(c.out, "\n--- Member Registration ---")

	username := c.promptValid("Username (3-20 chars, letters/digits/._@-): ", ValidUsername)
	if username == "" {
		return
	}
	password, err := c.readPassword("Password (min 8 chars, upper, lower, digit, special): ")
	if err != nil {
		c.fail(err)
		return
	}
	if !ValidPassword(password) {
		fmt.Fprintln(c.out, "Password does not meet the complexity requirements.")
		return
	}

	user := c.promptProfile()
	if user == nil {
		return
	}
	user.Username = username
	user.Address = c.promptAddress()

	id, err := c.svc.RegisterMember(user, password)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Registration successful! Your user ID is %d.\n", id)
}

// forgotPassword runs the emailed-code reset flow.
func (c *Console) forgotPassword() {
	username := c.prompt("Username: ")
	if username == "" {
		return
	}
	user, err := c.svc.GetUserByUsername(username)
	if err != nil {
		c.fail(err)
		return
	}

	code, err := c.svc.BeginPasswordReset(username)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "A verification code was sent to %s.\n", user.Email)

	entered := c.prompt("Verification code: ")
	if entered != code {
		fmt.Fprintln(c.out, "Incorrect verification code.")
		return
	}

	newPassword, err := c.readPassword("New password: ")
	if err != nil {
		c.fail(err)
		return
	}
	if !ValidPassword(newPassword) {
		fmt.Fprintln(c.out, "Password does not meet the complexity requirements.")
		return
	}
	if err := c.svc.ChangePassword(user.UserID, newPassword); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "Password updated. You can now log in.")
}

// promptValid retries a prompt until the validator passes, giving up after a
// few attempts so a scripted session cannot loop forever.
func (c *Console) promptValid(label string, valid func(string) bool) string {
	for attempts := 0; attempts < 3; attempts++ {
		raw := c.prompt(label)
		if valid(raw) {
			return raw
		}
		fmt.Fprintln(c.out, "Invalid input, please try again.")
	}
	fmt.Fprintln(c.out, "Too many invalid attempts.")
	return ""
}

// promptProfile collects the personal fields shared by member and
// administrator registration. Returns nil when input is abandoned.
func (c *Console) promptProfile() *library.User {
	firstname := c.promptValid("First name: ", ValidName)
	if firstname == "" {
		return nil
	}
	surname := c.promptValid("Surname: ", ValidName)
	if surname == "" {
		return nil
	}
	dob := c.promptValid("Date of birth (YYYY-MM-DD): ", ValidDateOfBirth)
	if dob == "" {
		return nil
	}
	gender := c.promptValid("Gender (male/female): ", ValidGender)
	if gender == "" {
		return nil
	}
	email := c.promptValid("Email: ", ValidEmail)
	if email == "" {
		return nil
	}
	phone := c.promptValid("Phone number: ", ValidPhoneNumber)
	if phone == "" {
		return nil
	}

	return &library.User{
		Firstname:   firstname,
		Surname:     surname,
		DateOfBirth: ParseDateOfBirth(dob),
		Gender:      ParseGender(gender),
		Email:       email,
		PhoneNumber: phone,
	}
}

// promptAddress collects the address block.
func (c *Console) promptAddress() library.Address {
	return library.Address{
		Street:  c.prompt("Street: "),
		City:    c.prompt("City: "),
		Pincode: c.prompt("Pincode: "),
		State:   c.prompt("State: "),
		Country: c.prompt("Country: "),
	}
}

// fail prints a service error in user-facing form.
func (c *Console) fail(err error) {
	switch {
	case errors.Is(err, library.ErrInvalidCredentials):
		fmt.Fprintln(c.out, "Invalid username or password.")
	case errors.Is(err, library.ErrNoAvailableCopies):
		fmt.Fprintln(c.out, "No copies of that book are currently available.")
	case errors.Is(err, library.ErrAlreadyReturned):
		fmt.Fprintln(c.out, "That book has already been returned.")
	case errors.Is(err, library.ErrUsernameTaken):
		fmt.Fprintln(c.out, "That username is already taken.")
	case errors.Is(err, library.ErrSuperAdmin):
		fmt.Fprintln(c.out, "The super administrator account cannot be changed this way.")
	case errors.Is(err, library.ErrCopiesOutstanding):
		fmt.Fprintln(c.out, "The book still has copies out on loan.")
	case errors.Is(err, library.ErrAdminCannotBorrow):
		fmt.Fprintln(c.out, "Administrators cannot borrow books.")
	case library.IsNotFound(err):
		fmt.Fprintf(c.out, "Not found: %v\n", err)
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}
