package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/core/model"
)

// BookingFilter describes an administrative bookings listing query.
type BookingFilter struct {
	Status model.BookingStatus // BookingStatusInvalid matches any
	Search string              // matches request number/customer email
	Limit  int
	Offset int
}

// BookingsQueryer lists the test drive booking operations which may
// run on a connection or in a transaction.
//
// ClaimHoldRelease is the one-shot guard of the booking inventory
// hold: a single conditional update which sets hold_released to true
// only while it is still false, reporting whether this caller won the
// claim. Exactly one of any number of concurrent claims succeeds, so
// the reserved unit can never be returned twice. The claim is never
// reverted. Bookings repositories never write the vehicle units
// counter.
type BookingsQueryer interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, bid uuid.UUID) (*model.Booking, error)
	UpdateStatus(ctx context.Context, bid uuid.UUID, status model.BookingStatus, notes *string) (*model.Booking, error)
	ClaimHoldRelease(ctx context.Context, bid uuid.UUID) (bool, error)
	List(ctx context.Context, f BookingFilter) ([]model.Booking, int64, error)
	ListForEmail(ctx context.Context, email string) ([]model.Booking, error)
}

type BookingsConnQueryer interface {
	BookingsQueryer
}

type BookingsTxQueryer interface {
	BookingsQueryer
	GetByIDForUpdate(ctx context.Context, bid uuid.UUID) (*model.Booking, error)
}

type Bookings interface {
	Conn(Conn) BookingsConnQueryer
	Tx(Tx) BookingsTxQueryer
}
