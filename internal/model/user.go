package model

import "time"

// Role values stored in the users.role column.  Every account carries
// exactly one of these and the value decides which route namespace the
// account may enter.
const (
	RoleCustomer = "customer"
	RoleMechanic = "mechanic"
	RoleAdmin    = "admin"
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RoleCustomer || s == RoleMechanic || s == RoleAdmin
}

// User represents an account row in the `users` table.  Customers are
// created through the public register form; mechanic and admin accounts
// are promoted by an admin.  Username and email are globally unique.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  Username     – unique login name.
//  FirstName    – given name shown on the pages.
//  LastName     – family name shown on the pages.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of customer, mechanic, admin.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	Username     string    // users.username
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}
