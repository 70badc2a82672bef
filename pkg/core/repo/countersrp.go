package repo

import "context"

// Well-known counter names for the human-readable document numbers.
// The base values keep the generated numbers in the familiar ranges
// of the pre-existing records (ORD-1001 and TD-2001 onwards).
const (
	CounterOrders   = "orders"
	CounterBookings = "bookings"
)

// CountersQueryer provides named atomic counters. Next increments the
// name counter by one as a single upsert statement and returns the
// new value; two concurrent calls can never observe the same value.
// Counters back the sequential order/booking numbers, replacing the
// count-the-documents scheme which could hand out duplicates under
// concurrent creations.
type CountersQueryer interface {
	Next(ctx context.Context, name string) (int64, error)
}

type CountersConnQueryer interface {
	CountersQueryer
}

type CountersTxQueryer interface {
	CountersQueryer
}

type Counters interface {
	Conn(Conn) CountersConnQueryer
	Tx(Tx) CountersTxQueryer
}
