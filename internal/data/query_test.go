package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBookListQuery(t *testing.T) {
	const selectBooks = "SELECT " + bookColumns + " FROM books"

	tests := []struct {
		name      string
		filters   BookFilters
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "no filters",
			filters:   BookFilters{Filters: Filters{Limit: 100}},
			wantQuery: selectBooks + " ORDER BY id LIMIT $1 OFFSET $2",
			wantArgs:  []any{100, 0},
		},
		{
			name:      "genre only",
			filters:   BookFilters{Genre: ptr("Classic"), Filters: Filters{Skip: 10, Limit: 5}},
			wantQuery: selectBooks + " WHERE genre = $1 ORDER BY id LIMIT $2 OFFSET $3",
			wantArgs:  []any{"Classic", 5, 10},
		},
		{
			name:      "zero author id",
			filters:   BookFilters{AuthorID: ptr(int64(0)), Filters: Filters{Limit: 100}},
			wantQuery: selectBooks + " WHERE author_id = $1 ORDER BY id LIMIT $2 OFFSET $3",
			wantArgs:  []any{int64(0), 100, 0},
		},
		{
			name: "all filters",
			filters: BookFilters{
				Genre:       ptr("Dystopian"),
				AuthorID:    ptr(int64(2)),
				PublisherID: ptr(int64(3)),
				Filters:     Filters{Skip: 1, Limit: 1},
			},
			wantQuery: selectBooks + " WHERE genre = $1 AND author_id = $2 AND publisher_id = $3 ORDER BY id LIMIT $4 OFFSET $5",
			wantArgs:  []any{"Dystopian", int64(2), int64(3), 1, 1},
		},
		{
			name:      "publisher without author",
			filters:   BookFilters{PublisherID: ptr(int64(7)), Filters: Filters{Limit: 20}},
			wantQuery: selectBooks + " WHERE publisher_id = $1 ORDER BY id LIMIT $2 OFFSET $3",
			wantArgs:  []any{int64(7), 20, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildBookListQuery(tt.filters)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
