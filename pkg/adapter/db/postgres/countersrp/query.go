package countersrp

import (
	"context"
	"fmt"

	"github.com/momeni/dealerweb/pkg/adapter/db/postgres"
)

// Next atomically increments the name counter by one as a single
// upsert statement and returns the new value. The statement either
// inserts the first value or increments the stored one, so concurrent
// callers always observe distinct values.
func Next[Q postgres.Queryer](ctx context.Context, q Q, name string) (int64, error) {
	gdb := q.GORM(ctx)
	var value int64
	err := gdb.Raw(`INSERT INTO counters (name, value) VALUES (?, 1)
ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
RETURNING value`, name).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("counter %q: %w", name, err)
	}
	return value, nil
}
