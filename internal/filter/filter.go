// Package filter narrows a record sequence to the users matching a query.
package filter

import (
	"strings"

	"userexplorer/internal/domain"
)

// Apply returns the records whose name or email contains query,
// case-insensitively, in their original order. An empty query returns
// records unchanged. The query is used as typed: no trimming.
func Apply(records []domain.Record, query string) []domain.Record {
	if query == "" {
		return records
	}

	lowerQuery := strings.ToLower(query)

	result := make([]domain.Record, 0, len(records))
	for _, record := range records {
		if Matches(record, lowerQuery) {
			result = append(result, record)
		}
	}
	return result
}

// Matches checks a single record against an already lower-cased query
func Matches(record domain.Record, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(record.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(record.Email), lowerQuery)
}
