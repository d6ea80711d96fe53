package service

import (
	"testing"

	"github.com/pmsadmin/console/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestFilterByName(t *testing.T) {
	list := []model.Business{
		{ID: "1", Name: "Sunny Cafe"},
		{ID: "2", Name: "Book Nook"},
		{ID: "3", Name: "CAFE Royal"},
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"blank term keeps order", "", []string{"1", "2", "3"}},
		{"whitespace term", "   ", []string{"1", "2", "3"}},
		{"case insensitive", "cafe", []string{"1", "3"}},
		{"substring", "ook", []string{"2"}},
		{"no match", "zzz", []string{}},
		{"leading space is part of the term", " cafe", []string{"1"}},
		{"trailing space is part of the term", "cafe ", []string{"1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByName(list, tt.term)
			ids := make([]string, 0, len(got))
			for _, b := range got {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterByName_Detailed(t *testing.T) {
	list := []model.DetailedBusiness{{ID: "1", Name: "Alpha"}, {ID: "2", Name: "beta"}}
	got := FilterByName(list, "BET")
	assert.Equal(t, []model.DetailedBusiness{{ID: "2", Name: "beta"}}, got)
}
