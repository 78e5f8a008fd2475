package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/utils"
)

// ErrUserNotFound is returned when no user matches the lookup key.
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned when the unique username or email is taken.
var ErrUserExists = errors.New("username or email already exists")

// UserRepo encapsulates all database queries related to users.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,username,first_name,last_name,password_hash,role,created_at"

// Create hashes the password and inserts the user, returning its ID.
// Missing role defaults to customer, the role the register form issues.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) (uint64, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.TrimSpace(u.Username)
	if u.Role == "" {
		u.Role = model.RoleCustomer
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, username, first_name, last_name, password_hash, role) VALUES (?,?,?,?,?,?)",
		u.Email, u.Username, u.FirstName, u.LastName, hash, u.Role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	u.ID = uint64(id)
	u.PasswordHash = hash
	return u.ID, nil
}

// GetByUsername fetches a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username=?", strings.TrimSpace(username))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email=?", strings.ToLower(strings.TrimSpace(email)))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.getBy(ctx, "id=?", id)
}

func (r *UserRepo) getBy(ctx context.Context, cond string, arg any) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+cond+" LIMIT 1", arg).
		Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns all users ordered by id, for the admin overview.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// UpdateRole changes a user's role.  The new role takes effect on the
// user's next role-gate lookup; existing session tokens stay valid.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET role=? WHERE id=?", role, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM users WHERE id=?)", id).Scan(&exists); err == nil && !exists {
			return ErrUserNotFound
		}
	}
	return nil
}
