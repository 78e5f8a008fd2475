// Package repository contains data access logic separated from HTTP
// handlers.  Each aggregate has its own repository struct holding the
// shared *sql.DB pool, plus sentinel error values that let handlers
// distinguish failure scenarios without inspecting driver errors.
package repository

import "strings"

// isDuplicateKey reports whether err is a MySQL unique-constraint
// violation (error 1062).  The repositories map it to their own
// sentinel values such as ErrUserExists or ErrDuplicateAssociation.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
