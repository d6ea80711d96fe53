package service

import (
	"strings"

	"github.com/pmsadmin/console/internal/domain/model"
)

// Named is satisfied by the business shapes the console lists.
type Named interface {
	model.Business | model.DetailedBusiness
}

// FilterByName keeps the entries whose name contains term, ignoring case.
// A blank or whitespace-only term returns list unchanged; any other term is matched as is,
// surrounding spaces included.
func FilterByName[T Named](list []T, term string) []T {
	if strings.TrimSpace(term) == "" {
		return list
	}
	term = strings.ToLower(term)
	out := make([]T, 0, len(list))
	for _, item := range list {
		if strings.Contains(strings.ToLower(nameOf(item)), term) {
			out = append(out, item)
		}
	}
	return out
}

func nameOf[T Named](item T) string {
	switch v := any(item).(type) {
	case model.Business:
		return v.Name
	case model.DetailedBusiness:
		return v.Name
	default:
		return ""
	}
}
