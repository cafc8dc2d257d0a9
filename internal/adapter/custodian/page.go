package custodian

import "context"

// Cursor is the normalized pagination cursor. Providers expose opaque
// strings or structured before/after tokens; adapters fold both into this
// single shape so cursor formats never leak upward.
type Cursor string

// Page is one page of a provider list call.
type Page[T any] struct {
	Items []T
	Next  Cursor // empty when this is the last page
}

// FetchAll follows pagination to exhaustion: fetch a page, and while a next
// cursor is present, fetch again with it. Items accumulate in page order;
// no reordering or deduplication happens at this layer.
func FetchAll[T any](ctx context.Context, fetch func(ctx context.Context, cursor Cursor) (Page[T], error)) ([]T, error) {
	var all []T
	var cursor Cursor
	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if page.Next == "" {
			return all, nil
		}
		cursor = page.Next
	}
}

// DedupeLastWins collapses duplicate items by key, keeping the last
// occurrence, and preserves first-seen order otherwise.
func DedupeLastWins[T any](items []T, key func(T) string) []T {
	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if pos, seen := index[k]; seen {
			out[pos] = item
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}
