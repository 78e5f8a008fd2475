package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/garage-repair-shop/internal/model"
)

// ErrMessageNotFound is returned when a contact message id does not exist.
var ErrMessageNotFound = errors.New("message not found")

// MessageRepo persists contact-form messages.
type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

// Create inserts a contact message and returns its ID.
func (r *MessageRepo) Create(ctx context.Context, email, body string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (email, body) VALUES (?,?)", email, body)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all messages, newest first.
func (r *MessageRepo) List(ctx context.Context) ([]*model.Message, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,body,created_at FROM messages ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Email, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// Delete removes a message by id.
func (r *MessageRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM messages WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMessageNotFound
	}
	return nil
}
