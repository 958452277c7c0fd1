package postgres

import (
	"fmt"
	"strings"
)

// buildListQuery constructs a filtered list query: base SELECT, optional
// WHERE conditions (already numbered against args), ordering, then LIMIT and
// OFFSET appended to args.
func buildListQuery(baseQuery string, conditions []string, args *[]interface{}, orderBy string, reqOffset, reqLimit int) string {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(baseQuery)

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY ")
	queryBuilder.WriteString(orderBy)

	*args = append(*args, reqLimit)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(*args)))
	*args = append(*args, reqOffset)
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(*args)))

	return queryBuilder.String()
}
