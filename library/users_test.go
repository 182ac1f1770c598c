package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUserStoresAddressAtomically(t *testing.T) {
	db := tempDB(t)

	id, err := db.AddUser(&User{
		Username:     "jane.doe",
		PasswordHash: "hash",
		Role:         RoleMember,
		Firstname:    "Jane",
		Surname:      "Doe",
		DateOfBirth:  NewDate(1990, 6, 15),
		Gender:       GenderFemale,
		Email:        "jane@example.com",
		PhoneNumber:  "+12025550123",
		Address: Address{
			Street: "22 Elm St", City: "Portland", Pincode: "97201",
			State: "OR", Country: "USA",
		},
	})
	require.NoError(t, err)

	user, err := db.GetUserByUsername("jane.doe")
	require.NoError(t, err)
	assert.Equal(t, id, user.UserID)
	assert.Equal(t, RoleMember, user.Role)
	assert.Equal(t, "Jane", user.Firstname)
	assert.Equal(t, NewDate(1990, 6, 15), user.DateOfBirth)
	assert.Equal(t, "22 Elm St", user.Address.Street)
	assert.Equal(t, id, user.Address.UserID)
}

func TestDuplicateUsernameIsRejected(t *testing.T) {
	db := tempDB(t)
	mustAddMember(t, db, "taken")

	_, err := db.AddUser(&User{
		Username: "taken", PasswordHash: "x", Role: RoleMember,
		Firstname: "Other", Surname: "Person",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	other := mustAddMember(t, db, "free")
	assert.ErrorIs(t, db.UpdateUsername(other, "taken"), ErrUsernameTaken)
}

func TestListUsersByRole(t *testing.T) {
	db := tempDB(t)
	mustAddMember(t, db, "member1")
	mustAddMember(t, db, "member2")
	_, err := db.AddUser(&User{
		Username: "boss", PasswordHash: "x", Role: RoleAdmin, AdminType: AdminSuper,
		Firstname: "Big", Surname: "Boss",
	})
	require.NoError(t, err)

	members, err := db.GetMembers()
	require.NoError(t, err)
	assert.Len(t, members, 2)

	admins, err := db.GetAdmins()
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsSuperAdmin())

	all, err := db.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPromotionToAdminPurgesLedger(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "promoted")
	bookID := mustAddBook(t, db, "Returned Book", 2)

	txID, err := db.BorrowBook(&Transaction{UserID: userID, BookID: bookID, BorrowDate: Today()})
	require.NoError(t, err)
	require.NoError(t, db.ReturnBook(txID, Today()))

	require.NoError(t, db.UpdateRole(userID, RoleAdmin, AdminStandard))

	user, err := db.GetUserByID(userID)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
	assert.Equal(t, AdminStandard, user.AdminType)

	txs, err := db.GetTransactionsByUserID(userID)
	require.NoError(t, err)
	assert.Empty(t, txs, "promotion must purge the borrow ledger")
}

func TestDemotionToMemberKeepsAdminTypeEmpty(t *testing.T) {
	db := tempDB(t)
	id, err := db.AddUser(&User{
		Username: "stdadmin", PasswordHash: "x", Role: RoleAdmin, AdminType: AdminStandard,
		Firstname: "Std", Surname: "Admin",
	})
	require.NoError(t, err)

	require.NoError(t, db.UpdateRole(id, RoleMember, ""))
	user, err := db.GetUserByID(id)
	require.NoError(t, err)
	assert.Equal(t, RoleMember, user.Role)
	assert.Empty(t, user.AdminType)
}

func TestDeleteUserRemovesAddressAndLedger(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "leaver")
	bookID := mustAddBook(t, db, "Any Book", 2)
	txID, err := db.BorrowBook(&Transaction{UserID: userID, BookID: bookID, BorrowDate: Today()})
	require.NoError(t, err)
	require.NoError(t, db.ReturnBook(txID, Today()))

	require.NoError(t, db.DeleteUser(userID))

	_, err = db.GetUserByID(userID)
	assert.True(t, IsNotFound(err))
	_, err = db.GetAddressByUserID(userID)
	assert.True(t, IsNotFound(err))
	txs, err := db.GetTransactionsByUserID(userID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestUpdateUserRewritesProfileAndAddress(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "mover")

	user, err := db.GetUserByID(userID)
	require.NoError(t, err)
	user.Email = "new@example.com"
	user.Address.City = "Austin"
	user.Address.State = "TX"
	require.NoError(t, db.UpdateUser(user))

	got, err := db.GetUserByID(userID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "Austin", got.Address.City)
	assert.Equal(t, "TX", got.Address.State)
}

func TestUpdateMemberAndAddressFieldVariants(t *testing.T) {
	db := tempDB(t)
	userID := mustAddMember(t, db, "fielder")

	require.NoError(t, db.UpdateMemberField(userID, SetFirstname("Renamed")))
	require.NoError(t, db.UpdateMemberField(userID, SetEmail("renamed@example.com")))
	require.NoError(t, db.UpdateMemberField(userID, SetDateOfBirth(NewDate(1985, 1, 2))))
	require.NoError(t, db.UpdateAddressField(userID, SetCity("Denver")))
	require.NoError(t, db.UpdateAddressField(userID, SetCountry("Canada")))

	user, err := db.GetUserByID(userID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Firstname)
	assert.Equal(t, "renamed@example.com", user.Email)
	assert.Equal(t, NewDate(1985, 1, 2), user.DateOfBirth)
	assert.Equal(t, "Denver", user.Address.City)
	assert.Equal(t, "Canada", user.Address.Country)
}

func TestUpdateFieldOnMissingUser(t *testing.T) {
	db := tempDB(t)
	assert.True(t, IsNotFound(db.UpdateMemberField(42, SetSurname("Ghost"))))
	assert.True(t, IsNotFound(db.UpdateAddressField(42, SetCity("Nowhere"))))
}
