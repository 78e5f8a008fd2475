package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/garage-repair-shop/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRepairEntriesColors(t *testing.T) {
	repairs := []*model.Repair{
		{ID: 1, CarName: "Golf IV", StartDate: day("2026-09-01"), EndDate: day("2026-09-03"), Active: true},
		{ID: 2, CarName: "Astra H", StartDate: day("2026-09-05"), EndDate: day("2026-09-06"), Active: false},
	}

	entries := RepairEntries(repairs, "/customer/repairs")
	require.Len(t, entries, 2)

	confirmed := entries[0]
	assert.Equal(t, "Golf IV", confirmed.Title)
	assert.Equal(t, "green", confirmed.Color)
	assert.Equal(t, "white", confirmed.TextColor)
	assert.Equal(t, "2026-09-01", confirmed.Start)
	assert.Equal(t, "2026-09-03", confirmed.End)
	assert.Equal(t, "/customer/repairs/1", confirmed.URL)

	proposal := entries[1]
	assert.Equal(t, "grey", proposal.Color)
	assert.Equal(t, "black", proposal.TextColor)
	assert.Equal(t, "/customer/repairs/2", proposal.URL)
}

// Busy blocks hide the owner: anonymous title, red, and only confirmed
// repairs appear.
func TestBusyEntriesSkipProposals(t *testing.T) {
	repairs := []*model.Repair{
		{ID: 1, CarName: "Golf IV", StartDate: day("2026-09-01"), EndDate: day("2026-09-03"), Active: true},
		{ID: 2, CarName: "Astra H", StartDate: day("2026-09-05"), EndDate: day("2026-09-06"), Active: false},
	}

	entries := BusyEntries(repairs)
	require.Len(t, entries, 1)
	assert.Equal(t, "-", entries[0].Title)
	assert.Equal(t, "red", entries[0].Color)
	assert.Empty(t, entries[0].URL)
}

func TestCalendarEntriesEmptyInput(t *testing.T) {
	assert.Empty(t, RepairEntries(nil, "/mechanic/repairs"))
	assert.Empty(t, BusyEntries(nil))
}

func TestParsePriceCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"10.00", 1000},
		{"10.5", 1050},
		{"10", 1000},
		{" 35.00 ", 3500},
		{"0.07", 7},
		{"", 0},
	}
	for _, tc := range cases {
		got, err := parsePriceCents(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"abc", "-5", "1.234", "1.x"} {
		_, err := parsePriceCents(bad)
		assert.Error(t, err, bad)
	}
}
