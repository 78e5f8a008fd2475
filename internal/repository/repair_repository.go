package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/garage-repair-shop/internal/model"
)

// ErrRepairNotFound is returned when a repair id does not exist.
var ErrRepairNotFound = errors.New("repair not found")

// RepairRepo encapsulates all database queries related to repairs.
type RepairRepo struct{ DB *sql.DB }

func NewRepairRepo(db *sql.DB) *RepairRepo { return &RepairRepo{DB: db} }

const repairColumns = "id,car_name,start_date,end_date,active,customer_id,money_cents,created_at"

// RepairRow is a repair joined with the owning customer's username, used
// on the mechanic pages where the owner matters.
type RepairRow struct {
	model.Repair
	CustomerName string
}

// Create inserts a repair.  On success the ID field is populated.
func (r *RepairRepo) Create(ctx context.Context, rep *model.Repair) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO repairs (car_name, start_date, end_date, active, customer_id, money_cents) VALUES (?,?,?,?,?,?)",
		rep.CarName, rep.StartDate, rep.EndDate, rep.Active, rep.CustomerID, rep.MoneyCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rep.ID = uint64(id)
	return nil
}

// GetByID fetches a repair by its id.
func (r *RepairRepo) GetByID(ctx context.Context, id uint64) (*model.Repair, error) {
	var rep model.Repair
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+repairColumns+" FROM repairs WHERE id=? LIMIT 1", id).
		Scan(&rep.ID, &rep.CarName, &rep.StartDate, &rep.EndDate, &rep.Active, &rep.CustomerID, &rep.MoneyCents, &rep.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRepairNotFound
		}
		return nil, err
	}
	return &rep, nil
}

// ListByCustomer returns all repairs owned by one customer.
func (r *RepairRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]*model.Repair, error) {
	return r.list(ctx,
		"SELECT "+repairColumns+" FROM repairs WHERE customer_id=? ORDER BY start_date, id", customerID)
}

// ListOthers returns repairs owned by everyone except the given customer.
// The customer calendar shows these as anonymous busy blocks.
func (r *RepairRepo) ListOthers(ctx context.Context, customerID uint64) ([]*model.Repair, error) {
	return r.list(ctx,
		"SELECT "+repairColumns+" FROM repairs WHERE customer_id<>? ORDER BY start_date, id", customerID)
}

// ListAll returns every repair joined with the owner's username.
func (r *RepairRepo) ListAll(ctx context.Context) ([]RepairRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.car_name, r.start_date, r.end_date, r.active, r.customer_id, r.money_cents, r.created_at, u.username
		 FROM repairs r JOIN users u ON u.id = r.customer_id
		 ORDER BY r.start_date, r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RepairRow
	for rows.Next() {
		var row RepairRow
		if err := rows.Scan(&row.ID, &row.CarName, &row.StartDate, &row.EndDate, &row.Active, &row.CustomerID, &row.MoneyCents, &row.CreatedAt, &row.CustomerName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Update overwrites the mechanic-editable fields of a repair.
func (r *RepairRepo) Update(ctx context.Context, rep *model.Repair) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE repairs SET car_name=?, start_date=?, end_date=?, active=?, money_cents=? WHERE id=?",
		rep.CarName, rep.StartDate, rep.EndDate, rep.Active, rep.MoneyCents, rep.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM repairs WHERE id=?)", rep.ID).Scan(&exists); err == nil && !exists {
			return ErrRepairNotFound
		}
	}
	return nil
}

// Delete removes a repair; association rows go with it (ON DELETE CASCADE).
func (r *RepairRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM repairs WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRepairNotFound
	}
	return nil
}

func (r *RepairRepo) list(ctx context.Context, query string, args ...any) ([]*model.Repair, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reps []*model.Repair
	for rows.Next() {
		var rep model.Repair
		if err := rows.Scan(&rep.ID, &rep.CarName, &rep.StartDate, &rep.EndDate, &rep.Active, &rep.CustomerID, &rep.MoneyCents, &rep.CreatedAt); err != nil {
			return nil, err
		}
		reps = append(reps, &rep)
	}
	return reps, rows.Err()
}
