package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrDuplicateAssociation is returned when a (part, repair) pair is
// attached twice.  The composite primary key enforces at most one row
// per pair.
var ErrDuplicateAssociation = errors.New("part already attached to repair")

// ErrAssociationNotFound is returned when no association row exists for
// the (part, repair) pair.
var ErrAssociationNotFound = errors.New("association not found")

// PartsInRepairRepo maintains the many-to-many relation between parts
// and repairs with a per-pair quantity.
type PartsInRepairRepo struct{ DB *sql.DB }

func NewPartsInRepairRepo(db *sql.DB) *PartsInRepairRepo { return &PartsInRepairRepo{DB: db} }

// PartInRepairRow is one association row joined with the part it names.
// The joined price is read fresh on every query so a later price edit is
// reflected in the next total computation.
type PartInRepairRow struct {
	PartID     uint64
	RepairID   uint64
	Name       string
	EngineType string
	PriceCents int64
	Quantity   int
}

// Attach creates the association row for (partID, repairID).  A second
// attach of the same pair fails with ErrDuplicateAssociation.
func (r *PartsInRepairRepo) Attach(ctx context.Context, partID, repairID uint64, quantity int) error {
	if quantity < 0 {
		quantity = 0
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO parts_in_repair (part_id, repair_id, quantity) VALUES (?,?,?)",
		partID, repairID, quantity)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateAssociation
		}
		return err
	}
	return nil
}

// UpdateQuantity overwrites the quantity of the association row located
// by the composite key.  ErrAssociationNotFound when no such row exists.
func (r *PartsInRepairRepo) UpdateQuantity(ctx context.Context, partID, repairID uint64, quantity int) error {
	if quantity < 0 {
		quantity = 0
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE parts_in_repair SET quantity=? WHERE part_id=? AND repair_id=?",
		quantity, partID, repairID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL reports zero affected rows for a same-value update too,
		// so probe existence before declaring the row missing.
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM parts_in_repair WHERE part_id=? AND repair_id=?)",
			partID, repairID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrAssociationNotFound
		}
	}
	return nil
}

// Detach deletes the association row for the pair.
func (r *PartsInRepairRepo) Detach(ctx context.Context, partID, repairID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM parts_in_repair WHERE part_id=? AND repair_id=?", partID, repairID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAssociationNotFound
	}
	return nil
}

// ListByRepair returns the parts attached to a repair with quantity and
// the current unit price.
func (r *PartsInRepairRepo) ListByRepair(ctx context.Context, repairID uint64) ([]PartInRepairRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT pir.part_id, pir.repair_id, p.name, p.engine_type, p.price_cents, pir.quantity
		 FROM parts_in_repair pir JOIN parts p ON p.id = pir.part_id
		 WHERE pir.repair_id=? ORDER BY p.name`, repairID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PartInRepairRow
	for rows.Next() {
		var row PartInRepairRow
		if err := rows.Scan(&row.PartID, &row.RepairID, &row.Name, &row.EngineType, &row.PriceCents, &row.Quantity); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TotalCents sums quantity × unit price over the association rows.  It
// is computed on every call, never cached, because both the quantity and
// the part price mutate independently.
func TotalCents(rows []PartInRepairRow) int64 {
	var total int64
	for _, row := range rows {
		total += int64(row.Quantity) * row.PriceCents
	}
	return total
}
