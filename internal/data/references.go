package data

import "context"

// checkReferences confirms that the author and publisher a book is about to
// point at exist. A nil id means no reference and always passes. The author
// is checked first, so when both are missing the author is reported.
func checkReferences(ctx context.Context, q querier, authorID, publisherID *int64) error {
	refs := []struct {
		entity string
		table  string
		id     *int64
	}{
		{"Author", "authors", authorID},
		{"Publisher", "publishers", publisherID},
	}

	for _, ref := range refs {
		if ref.id == nil {
			continue
		}

		found, err := exists(ctx, q, ref.table, *ref.id)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Entity: ref.entity, ID: *ref.id}
		}
	}

	return nil
}
