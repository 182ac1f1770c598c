package library

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// User repository. Users and their one-to-one addresses are read with two
// statements and written inside a single transaction, so a user without an
// address is never observable.

const userColumns = `user_id, username, password, user_type,
        COALESCE(admin_type,'') AS admin_type, firstname, surname,
        COALESCE(date_of_birth,'') AS date_of_birth, COALESCE(gender,'') AS gender,
        email, phone_number`

// AddUser inserts the user and its address atomically and returns the new
// user ID. The password must already be hashed by the caller.
func (d *Database) AddUser(u *User) (int64, error) {
	var adminType any
	if u.AdminType != "" {
		adminType = string(u.AdminType)
	}

	var userID int64
	err := d.inTx(func(tx *sqlx.Tx) error {
		res, err := tx.Exec(
			`INSERT INTO users (username, password, user_type, admin_type,
                 firstname, surname, date_of_birth, gender, email, phone_number)
             VALUES (?,?,?,?,?,?,?,?,?,?)`,
			u.Username, u.PasswordHash, u.Role, adminType,
			u.Firstname, u.Surname, u.DateOfBirth, u.Gender, u.Email, u.PhoneNumber,
		)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return ErrUsernameTaken
			}
			return fmt.Errorf("insert user: %w", err)
		}
		if userID, err = res.LastInsertId(); err != nil {
			return err
		}

		a := u.Address
		_, err = tx.Exec(
			`INSERT INTO addresses (user_id, street, city, pincode, state, country)
             VALUES (?,?,?,?,?,?)`,
			userID, a.Street, a.City, a.Pincode, a.State, a.Country,
		)
		if err != nil {
			return fmt.Errorf("insert address: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// GetUserByID fetches one user with its address.
func (d *Database) GetUserByID(userID int64) (*User, error) {
	var u User
	if err := d.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE user_id=?`, userID); err != nil {
		return nil, getOr(err, "user", userID)
	}
	if err := d.attachAddress(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername fetches one user with its address by unique username.
func (d *Database) GetUserByUsername(username string) (*User, error) {
	var u User
	if err := d.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE username=?`, username); err != nil {
		return nil, getOr(err, "user", username)
	}
	if err := d.attachAddress(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserExists reports whether a username is already registered.
func (d *Database) UserExists(username string) (bool, error) {
	var exists bool
	err := d.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username=?)`, username)
	return exists, err
}

// GetAllUsers returns every account with addresses attached.
func (d *Database) GetAllUsers() ([]*User, error) {
	return d.listUsers(`SELECT ` + userColumns + ` FROM users ORDER BY user_id`)
}

// GetAdmins returns administrator accounts only.
func (d *Database) GetAdmins() ([]*User, error) {
	return d.listUsers(`SELECT ` + userColumns + ` FROM users WHERE user_type='admin' ORDER BY user_id`)
}

// GetMembers returns member accounts only.
func (d *Database) GetMembers() ([]*User, error) {
	return d.listUsers(`SELECT ` + userColumns + ` FROM users WHERE user_type='member' ORDER BY user_id`)
}

func (d *Database) listUsers(query string, args ...any) ([]*User, error) {
	var users []*User
	if err := d.db.Select(&users, query, args...); err != nil {
		return nil, err
	}

	var addresses []Address
	if err := d.db.Select(&addresses, `SELECT * FROM addresses`); err != nil {
		return nil, err
	}
	byUser := make(map[int64]Address, len(addresses))
	for _, a := range addresses {
		byUser[a.UserID] = a
	}
	for _, u := range users {
		u.Address = byUser[u.UserID]
	}
	return users, nil
}

func (d *Database) attachAddress(u *User) error {
	err := d.db.Get(&u.Address, `SELECT * FROM addresses WHERE user_id=?`, u.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // tolerated for legacy rows; registration always writes one
	}
	return err
}

// UpdateUser rewrites the profile columns and the address of an existing
// user in one transaction. Username, password, role, and admin type have
// dedicated update paths.
func (d *Database) UpdateUser(u *User) error {
	return d.inTx(func(tx *sqlx.Tx) error {
		res, err := tx.Exec(
			`UPDATE users SET firstname=?, surname=?, date_of_birth=?, gender=?,
                 email=?, phone_number=? WHERE user_id=?`,
			u.Firstname, u.Surname, u.DateOfBirth, u.Gender,
			u.Email, u.PhoneNumber, u.UserID,
		)
		if err != nil {
			return fmt.Errorf("update user %d: %w", u.UserID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound("user", u.UserID)
		}

		a := u.Address
		_, err = tx.Exec(
			`UPDATE addresses SET street=?, city=?, pincode=?, state=?, country=?
             WHERE user_id=?`,
			a.Street, a.City, a.Pincode, a.State, a.Country, u.UserID,
		)
		if err != nil {
			return fmt.Errorf("update address for user %d: %w", u.UserID, err)
		}
		return nil
	})
}

// UpdateUsername renames an account.
func (d *Database) UpdateUsername(userID int64, username string) error {
	res, err := d.db.Exec(`UPDATE users SET username=? WHERE user_id=?`, username, userID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrUsernameTaken
		}
		return fmt.Errorf("update username for user %d: %w", userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("user", userID)
	}
	return nil
}

// UpdatePassword stores a new password hash.
func (d *Database) UpdatePassword(userID int64, passwordHash string) error {
	res, err := d.db.Exec(`UPDATE users SET password=? WHERE user_id=?`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("update password for user %d: %w", userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("user", userID)
	}
	return nil
}

// UpdateRole switches an account between member and administrator. Promoting
// to administrator purges the account's borrow history in the same
// transaction, since administrators cannot hold loans.
func (d *Database) UpdateRole(userID int64, role Role, adminType AdminType) error {
	var adminVal any
	if adminType != "" {
		adminVal = string(adminType)
	}
	return d.inTx(func(tx *sqlx.Tx) error {
		if role == RoleAdmin {
			if _, err := tx.Exec(`DELETE FROM transactions WHERE user_id=?`, userID); err != nil {
				return fmt.Errorf("purge transactions for user %d: %w", userID, err)
			}
		}
		res, err := tx.Exec(`UPDATE users SET user_type=?, admin_type=? WHERE user_id=?`,
			role, adminVal, userID)
		if err != nil {
			return fmt.Errorf("update role for user %d: %w", userID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound("user", userID)
		}
		return nil
	})
}

// UpdateAdminType switches an administrator between super and standard.
func (d *Database) UpdateAdminType(userID int64, adminType AdminType) error {
	res, err := d.db.Exec(`UPDATE users SET admin_type=? WHERE user_id=?`, adminType, userID)
	if err != nil {
		return fmt.Errorf("update admin type for user %d: %w", userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("user", userID)
	}
	return nil
}

// DeleteUser removes the account, its transactions, and its address in one
// transaction. The super-administrator precondition lives in the service.
func (d *Database) DeleteUser(userID int64) error {
	return d.inTx(func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`DELETE FROM transactions WHERE user_id=?`, userID); err != nil {
			return fmt.Errorf("delete transactions for user %d: %w", userID, err)
		}
		// Address rows cascade via the FK.
		res, err := tx.Exec(`DELETE FROM users WHERE user_id=?`, userID)
		if err != nil {
			return fmt.Errorf("delete user %d: %w", userID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound("user", userID)
		}
		return nil
	})
}

// GetAddressByUserID fetches the address owned by a user.
func (d *Database) GetAddressByUserID(userID int64) (*Address, error) {
	var a Address
	if err := d.db.Get(&a, `SELECT * FROM addresses WHERE user_id=?`, userID); err != nil {
		return nil, getOr(err, "address", userID)
	}
	return &a, nil
}

// UpdateAddress rewrites a user's address.
func (d *Database) UpdateAddress(userID int64, a *Address) error {
	res, err := d.db.Exec(
		`UPDATE addresses SET street=?, city=?, pincode=?, state=?, country=? WHERE user_id=?`,
		a.Street, a.City, a.Pincode, a.State, a.Country, userID)
	if err != nil {
		return fmt.Errorf("update address for user %d: %w", userID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("address", userID)
	}
	return nil
}
