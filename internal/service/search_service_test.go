package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchScore(t *testing.T) {
	cases := []struct {
		name  string
		query string
		match string
		want  float64
	}{
		{"exact", "Jalen Harris", "Jalen Harris", 100},
		{"exact case-insensitive", "jalen harris", "Jalen Harris", 100},
		{"prefix", "Jalen", "Jalen Harris", 90},
		{"substring", "Harris", "Jalen Harris", 90},
		{"token overlap", "harris jalen", "Jalen Harris", 100},
		{"partial token", "jal har", "Jalen Harris", 100},
		{"half overlap", "jalen jones", "Jalen Harris", 50},
		{"no overlap", "marcus carr", "Jalen Harris", 0},
		{"empty query", "", "Jalen Harris", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, matchScore(tc.query, tc.match), 0.01)
		})
	}
}
