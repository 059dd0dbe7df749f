// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the shared count-then-fetch pagination
// helper used by every list query in the package, so that totals, stable
// ordering, and offset arithmetic are implemented exactly once.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// FindPage executes the paginated-query pattern against an already-scoped
// query: count the total matching rows, then fetch one page ordered by the
// given clause. The order clause must include a unique tie-break column
// (callers append ", id") so that repeated calls over unmodified data return
// stable pages.
//
// base must carry the Model and any Where/Joins scopes; preloads are applied
// to the fetch only. A page past the end of the result set yields an empty
// slice with the accurate total, not an error.
func FindPage[T any](ctx context.Context, base *gorm.DB, order string, offset, limit int, preloads ...string) ([]T, int64, error) {
	var total int64
	if err := base.WithContext(ctx).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	out := []T{}
	if total == 0 || int64(offset) >= total {
		return out, total, nil
	}

	q := base.WithContext(ctx).Order(order).Offset(offset).Limit(limit)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
