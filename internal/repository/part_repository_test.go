package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesName(t *testing.T) {
	cases := []struct {
		query string
		name  string
		want  bool
	}{
		{"filter", "Oil Filter Bosch", true},
		{"filter", "Air Filter Mann", true},
		{"bosch", "Oil Filter Bosch", true},
		{"bosch", "Air Filter Mann", false},
		{"FILTER", "oil filter bosch", true},
		{"oil pump", "Air Filter Mann", false},
		{"oil pump", "Oil Filter Bosch", true}, // one query word suffices
		{"filt", "Oil Filter Bosch", false},    // whole words only, no substrings
		{"", "Oil Filter Bosch", true},
		{"   ", "Oil Filter Bosch", true},
		{"filter", "", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MatchesName(tc.query, tc.name),
			"query=%q name=%q", tc.query, tc.name)
	}
}
