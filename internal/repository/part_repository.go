package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/garage-repair-shop/internal/model"
)

// ErrPartNotFound is returned when a part id does not exist.
var ErrPartNotFound = errors.New("part not found")

// ErrPartExists is returned when the unique part name is already in use.
var ErrPartExists = errors.New("part name already exists")

// PartRepo encapsulates all database queries related to storage parts.
type PartRepo struct{ DB *sql.DB }

func NewPartRepo(db *sql.DB) *PartRepo { return &PartRepo{DB: db} }

const partColumns = "id,name,amount_left,engine_type,price_cents,nr_oem,qr_code,created_at"

// PartFilter selects at most one storage filter.  Exactly one filter is
// applied per request; precedence is NrOEM, then QRCode, then SearchName.
// All empty means the unfiltered list.
type PartFilter struct {
	NrOEM      string
	QRCode     string
	SearchName string
}

// Create inserts a part.  On success the ID field is populated.
func (r *PartRepo) Create(ctx context.Context, p *model.Part) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO parts (name, amount_left, engine_type, price_cents, nr_oem, qr_code) VALUES (?,?,?,?,?,?)",
		p.Name, p.AmountLeft, p.EngineType, p.PriceCents, p.NrOEM, p.QRCode)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrPartExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a part by its id.
func (r *PartRepo) GetByID(ctx context.Context, id uint64) (*model.Part, error) {
	var p model.Part
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+partColumns+" FROM parts WHERE id=? LIMIT 1", id).
		Scan(&p.ID, &p.Name, &p.AmountLeft, &p.EngineType, &p.PriceCents, &p.NrOEM, &p.QRCode, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update overwrites all editable fields of a part.
func (r *PartRepo) Update(ctx context.Context, p *model.Part) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE parts SET name=?, amount_left=?, engine_type=?, price_cents=?, nr_oem=?, qr_code=? WHERE id=?",
		p.Name, p.AmountLeft, p.EngineType, p.PriceCents, p.NrOEM, p.QRCode, p.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrPartExists
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM parts WHERE id=?)", p.ID).Scan(&exists); err == nil && !exists {
			return ErrPartNotFound
		}
	}
	return nil
}

// Delete removes a part; association rows go with it (ON DELETE CASCADE).
func (r *PartRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM parts WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrPartNotFound
	}
	return nil
}

// List returns all parts ordered by name.
func (r *PartRepo) List(ctx context.Context) ([]*model.Part, error) {
	return r.list(ctx, "SELECT "+partColumns+" FROM parts ORDER BY name")
}

// Filter applies exactly one storage filter in precedence order
// (OEM number, QR code, name search) and falls back to the full list.
// The name search matches when any whitespace-separated query word
// equals any word of the part name, case-insensitively.
func (r *PartRepo) Filter(ctx context.Context, f PartFilter) ([]*model.Part, error) {
	switch {
	case strings.TrimSpace(f.NrOEM) != "":
		return r.list(ctx,
			"SELECT "+partColumns+" FROM parts WHERE nr_oem=? ORDER BY name",
			strings.TrimSpace(f.NrOEM))
	case strings.TrimSpace(f.QRCode) != "":
		return r.list(ctx,
			"SELECT "+partColumns+" FROM parts WHERE qr_code=? ORDER BY name",
			strings.TrimSpace(f.QRCode))
	case strings.TrimSpace(f.SearchName) != "":
		all, err := r.List(ctx)
		if err != nil {
			return nil, err
		}
		// Whole-word matching is not expressible with LIKE, and a single
		// shop's inventory is small, so the predicate runs in Go.
		matched := make([]*model.Part, 0, len(all))
		for _, p := range all {
			if MatchesName(f.SearchName, p.Name) {
				matched = append(matched, p)
			}
		}
		return matched, nil
	default:
		return r.List(ctx)
	}
}

func (r *PartRepo) list(ctx context.Context, query string, args ...any) ([]*model.Part, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []*model.Part
	for rows.Next() {
		var p model.Part
		if err := rows.Scan(&p.ID, &p.Name, &p.AmountLeft, &p.EngineType, &p.PriceCents, &p.NrOEM, &p.QRCode, &p.CreatedAt); err != nil {
			return nil, err
		}
		parts = append(parts, &p)
	}
	return parts, rows.Err()
}

// MatchesName reports whether any word of the query equals any word of
// the part name, ignoring case.  Words are whitespace tokens.  An empty
// query matches everything.
func MatchesName(query, name string) bool {
	qWords := strings.Fields(query)
	if len(qWords) == 0 {
		return true
	}
	nWords := strings.Fields(name)
	for _, q := range qWords {
		for _, n := range nWords {
			if strings.EqualFold(q, n) {
				return true
			}
		}
	}
	return false
}
