package state

import (
	"strings"

	"github.com/five82/curator/internal/harvard"
)

// Filter returns the records matching query, case-insensitively, on title,
// date, classification, credit line, object number or any person's display
// name. A blank query returns records unchanged.
func Filter(records []harvard.Object, query string) []harvard.Object {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return records
	}

	out := make([]harvard.Object, 0, len(records))
	for _, rec := range records {
		if matches(rec, needle) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec harvard.Object, needle string) bool {
	for _, field := range []string{rec.Title, rec.Dated, rec.Classification, rec.CreditLine, rec.ObjectNumber} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	for _, p := range rec.People {
		if strings.Contains(strings.ToLower(p.DisplayName), needle) {
			return true
		}
	}
	return false
}
