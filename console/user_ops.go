package console

import (
	"fmt"

	"library-management/library"
)

// userOpsMenu is the administrator user-management menu. Options that touch
// other administrators are gated on the acting user being the super
// administrator. Returns true on exit.
func (c *Console) userOpsMenu(actor *library.User) bool {
	for {
		fmt.Fprintln(c.out, "\n--- User Operations ---")
		fmt.Fprintln(c.out, "1.  Add a member")
		fmt.Fprintln(c.out, "2.  Find a user by ID")
		fmt.Fprintln(c.out, "3.  Find a user by username")
		fmt.Fprintln(c.out, "4.  View all members")
		fmt.Fprintln(c.out, "5.  View all administrators")
		fmt.Fprintln(c.out, "6.  View all users")
		fmt.Fprintln(c.out, "7.  Update a member's profile")
		fmt.Fprintln(c.out, "8.  Change a user's username")
		fmt.Fprintln(c.out, "9.  Change a user's password")
		fmt.Fprintln(c.out, "10. Remove a user")
		fmt.Fprintln(c.out, "11. View a member's borrowed books")
		fmt.Fprintln(c.out, "12. View a member's borrowing history")
		if actor.IsSuperAdmin() {
			fmt.Fprintln(c.out, "13. Add an administrator")
			fmt.Fprintln(c.out, "14. Change a user's role")
			fmt.Fprintln(c.out, "15. Change an administrator's type")
		}
		fmt.Fprintln(c.out, "16. Back")
		fmt.Fprintln(c.out, "17. Exit")

		choice := c.promptChoice()
		if c.eof {
			return true
		}
		if !actor.IsSuperAdmin() && choice >= 13 && choice <= 15 {
			fmt.Fprintln(c.out, "Only the super administrator can do that.")
			continue
		}
		switch choice {
		case 1:
			c.addMember()
		case 2:
			c.findUserByID()
		case 3:
			c.findUserByUsername()
		case 4:
			c.listUsers(c.svc.ListMembers)
		case 5:
			c.listUsers(c.svc.ListAdmins)
		case 6:
			c.listUsers(c.svc.ListUsers)
		case 7:
			userID, ok := c.promptInt64("Member ID: ")
			if ok {
				c.updateMemberProfile(userID)
			}
		case 8:
			c.changeUsername()
		case 9:
			c.changeUserPassword()
		case 10:
			c.removeUser()
		case 11:
			userID, ok := c.promptInt64("Member ID: ")
			if ok {
				c.showBorrowedBooks(userID)
			}
		case 12:
			userID, ok := c.promptInt64("Member ID: ")
			if ok {
				c.showBorrowingHistory(userID)
			}
		case 13:
			c.addAdmin(actor)
		case 14:
			c.changeRole()
		case 15:
			c.changeAdminType()
		case 16:
			return false
		case 17:
			fmt.Fprintln(c.out, "Goodbye!")
			return true
		default:
			fmt.Fprintln(c.out, "Invalid choice, please try again.")
		}
	}
}

func (c *Console) addMember() {
	fmt.Fprintln(c.out, "\n--- New Member ---")
	username := c.promptValid("Username: ", ValidUsername)
	if username == "" {
		return
	}
	password, err := c.readPassword("Password: ")
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
	fmt.Fprintf(c.out, "Member added with ID %d.\n", id)
}

// addAdmin creates a standard administrator. Only the super administrator
// reaches this path, and a second super administrator cannot be minted.
func (c *Console) addAdmin(actor *library.User) {
	fmt.Fprintln(c.out, "\n--- New Administrator ---")
	username := c.promptValid("Username: ", ValidUsername)
	if username == "" {
		return
	}
	password, err := c.readPassword("Password: ")
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

	id, err := c.svc.RegisterAdmin(actor, user, password, library.AdminStandard)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Administrator added with ID %d.\n", id)
}

func (c *Console) findUserByID() {
	userID, ok := c.promptInt64("User ID: ")
	if !ok {
		return
	}
	user, err := c.svc.GetUserByID(userID)
	if err != nil {
		c.fail(err)
		return
	}
	c.printUser(user)
}

func (c *Console) findUserByUsername() {
	username := c.prompt("Username: ")
	user, err := c.svc.GetUserByUsername(username)
	if err != nil {
		c.fail(err)
		return
	}
	c.printUser(user)
}

func (c *Console) listUsers(fetch func() ([]*library.User, error)) {
	users, err := fetch()
	if err != nil {
		c.fail(err)
		return
	}
	c.printUsers(users)
}

func (c *Console) changeUsername() {
	userID, ok := c.promptInt64("User ID: ")
	if !ok {
		return
	}
	username := c.promptValid("New username: ", ValidUsername)
	if username == "" {
		return
	}
	if err := c.svc.RenameUser(userID, username); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "Username updated.")
}

func (c *Console) changeUserPassword() {
	userID, ok := c.promptInt64("User ID: ")
	if !ok {
		return
	}
	password, err := c.readPassword("New password: ")
	if err != nil {
		c.fail(err)
		return
	}
	if !ValidPassword(password) {
		fmt.Fprintln(c.out, "Password does not meet the complexity requirements.")
		return
	}
	if err := c.svc.ChangePassword(userID, password); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "Password updated.")
}

func (c *Console) removeUser() {
	userID, ok := c.promptInt64("User ID to remove: ")
	if !ok {
		return
	}
	if err := c.svc.DeleteUser(userID); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "User removed.")
}

// changeRole flips an account between member and administrator.
func (c *Console) changeRole() {
	userID, ok := c.promptInt64("User ID: ")
	if !ok {
		return
	}
	fmt.Fprintln(c.out, "1. Member")
	fmt.Fprintln(c.out, "2. Administrator")

	var role library.Role
	switch c.promptChoice() {
	case 1:
		role = library.RoleMember
	case 2:
		role = library.RoleAdmin
		fmt.Fprintln(c.out, "Note: promoting a member discards their borrowing records.")
	default:
		fmt.Fprintln(c.out, "Invalid choice.")
		return
	}
	if err := c.svc.ChangeRole(userID, role); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "Role updated.")
}

func (c *Console) changeAdminType() {
	userID, ok := c.promptInt64("Administrator ID: ")
	if !ok {
		return
	}
	fmt.Fprintln(c.out, "1. Standard")
	fmt.Fprintln(c.out, "2. Super")

	var adminType library.AdminType
	switch c.promptChoice() {
	case 1:
		adminType = library.AdminStandard
	case 2:
		// Refused by the service: there is exactly one super administrator.
		adminType = library.AdminSuper
	default:
		fmt.Fprintln(c.out, "Invalid choice.")
		return
	}
	if err := c.svc.ChangeAdminType(userID, adminType); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "Administrator type updated.")
}

// updateMemberProfile is the single-field profile submenu, shared by the
// member self-service path and the administrator path.
func (c *Console) updateMemberProfile(userID int64) {
	for {
		fmt.Fprintln(c.out, "\n--- Update Profile ---")
		fmt.Fprintln(c.out, "1.  First name")
		fmt.Fprintln(c.out, "2.  Surname")
		fmt.Fprintln(c.out, "3.  Date of birth")
		fmt.Fprintln(c.out, "4.  Gender")
		fmt.Fprintln(c.out, "5.  Email")
		fmt.Fprintln(c.out, "6.  Phone number")
		fmt.Fprintln(c.out, "7.  Street")
		fmt.Fprintln(c.out, "8.  City")
		fmt.Fprintln(c.out, "9.  Pincode")
		fmt.Fprintln(c.out, "10. State")
		fmt.Fprintln(c.out, "11. Country")
		fmt.Fprintln(c.out, "12. Done")

		choice := c.promptChoice()
		if c.eof || choice == 12 {
			return
		}

		var err error
		switch choice {
		case 1:
			if v := c.promptValid("New first name: ", ValidName); v != "" {
				err = c.svc.UpdateMemberField(userID, library.SetFirstname(v))
			}
		case 2:
			if v := c.promptValid("New surname: ", ValidName); v != "" {
				err = c.svc.UpdateMemberField(userID, library.SetSurname(v))
			}
		case 3:
			if v := c.promptValid("New date of birth (YYYY-MM-DD): ", ValidDateOfBirth); v != "" {
				err = c.svc.UpdateMemberField(userID, library.SetDateOfBirth(ParseDateOfBirth(v)))
			}
		case 4:
			if v := c.promptValid("New gender (male/female): ", ValidGender); v != "" {
				err = c.svc.UpdateMemberField(userID, library.SetGender(ParseGender(v)))
			}
		case 5:
			if v := c.promptValid("New email: ", ValidEmail); v != "" {
				err = c.svc.UpdateMemberField(userID, library.SetEmail(v))
			}
		case 6:
			if v := c.promptValid("New phone number: ", ValidPhoneNumber); v != "" {
				err = c.svc.UpdateMemberField(userID, library.SetPhoneNumber(v))
			}
		case 7:
			if v := c.promptValid("New street: ", ValidPlace); v != "" {
				err = c.svc.UpdateAddressField(userID, library.SetStreet(v))
			}
		case 8:
			if v := c.promptValid("New city: ", ValidPlace); v != "" {
				err = c.svc.UpdateAddressField(userID, library.SetCity(v))
			}
		case 9:
			if v := c.promptValid("New pincode: ", ValidPincode); v != "" {
				err = c.svc.UpdateAddressField(userID, library.SetPincode(v))
			}
		case 10:
			if v := c.promptValid("New state: ", ValidPlace); v != "" {
				err = c.svc.UpdateAddressField(userID, library.SetState(v))
			}
		case 11:
			if v := c.promptValid("New country: ", ValidPlace); v != "" {
				err = c.svc.UpdateAddressField(userID, library.SetCountry(v))
			}
		default:
			fmt.Fprintln(c.out, "Invalid choice, please try again.")
			continue
		}
		if err != nil {
			c.fail(err)
			continue
		}
		fmt.Fprintln(c.out, "Profile updated.")
	}
}
