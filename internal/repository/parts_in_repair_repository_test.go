package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The 35.00 scenario: 3 × 10.00 plus 1 × 5.00.
func TestTotalCents(t *testing.T) {
	rows := []PartInRepairRow{
		{PartID: 1, RepairID: 9, Name: "Oil Filter Bosch", PriceCents: 1000, Quantity: 3},
		{PartID: 2, RepairID: 9, Name: "Drain Plug", PriceCents: 500, Quantity: 1},
	}
	assert.Equal(t, int64(3500), TotalCents(rows))
}

func TestTotalCentsEmpty(t *testing.T) {
	assert.Zero(t, TotalCents(nil))
	assert.Zero(t, TotalCents([]PartInRepairRow{}))
}

func TestTotalCentsZeroQuantity(t *testing.T) {
	rows := []PartInRepairRow{
		{PriceCents: 1000, Quantity: 0},
		{PriceCents: 250, Quantity: 4},
	}
	assert.Equal(t, int64(1000), TotalCents(rows))
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(errors.New("Error 1062: Duplicate entry '1-9' for key 'PRIMARY'")))
	assert.False(t, isDuplicateKey(errors.New("Error 1452: foreign key constraint fails")))
	assert.False(t, isDuplicateKey(nil))
}
