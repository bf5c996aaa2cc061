package classroom

import (
	"context"
	"fmt"
)

// pageFunc fetches the page addressed by pageToken (empty for the first
// page) and returns its records and the token of the next page.
type pageFunc[T any] func(ctx context.Context, pageToken string) (records []T, nextPageToken string, err error)

// paginate calls fetch until the API stops returning a next page token and
// returns all records in page order. An error on any page discards the
// records accumulated so far.
func paginate[T any](ctx context.Context, fetch pageFunc[T]) ([]T, error) {
	var (
		all   []T
		token string
		pages int
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, next, err := fetch(ctx, token)
		if err != nil {
			return nil, err
		}
		pages++
		all = append(all, records...)

		if next == "" {
			return all, nil
		}
		if next == token {
			return nil, fmt.Errorf("%w: page %d returned its own token", ErrPaginationStalled, pages)
		}
		token = next
	}
}

// mapAll converts every record with convert, keeping order. It returns nil
// for an empty input so callers can hand back an absent result directly.
func mapAll[R any, T any](records []R, convert func(R) (T, error)) ([]T, error) {
	if len(records) == 0 {
		return nil, nil
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		v, err := convert(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
