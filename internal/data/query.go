package data

import (
	"fmt"
	"strings"
)

// BookFilters narrows a book listing. A nil field imposes no constraint; a
// non-nil one is an exact match, including zero values such as AuthorID 0
// or an empty Genre.
type BookFilters struct {
	Genre       *string
	AuthorID    *int64
	PublisherID *int64
	Filters
}

// buildBookListQuery ANDs the set filters together and pages the result.
// Placeholders are numbered in the order they appear.
func buildBookListQuery(f BookFilters) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	where := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if f.Genre != nil {
		where("genre", *f.Genre)
	}
	if f.AuthorID != nil {
		where("author_id", *f.AuthorID)
	}
	if f.PublisherID != nil {
		where("publisher_id", *f.PublisherID)
	}

	var b strings.Builder
	b.WriteString("SELECT " + bookColumns + " FROM books")
	if len(conditions) > 0 {
		b.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	args = append(args, f.Limit, f.Skip)
	fmt.Fprintf(&b, " ORDER BY id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return b.String(), args
}
