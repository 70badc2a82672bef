package bookingsrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/adapter/db/postgres"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (bookings *Repo) Conn(c repo.Conn) repo.BookingsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, b *model.Booking) error {
	return Create(ctx, cq.Conn, b)
}

func (cq connQueryer) GetByID(ctx context.Context, bid uuid.UUID) (*model.Booking, error) {
	return GetByID(ctx, cq.Conn, bid)
}

func (cq connQueryer) UpdateStatus(ctx context.Context, bid uuid.UUID, status model.BookingStatus, notes *string) (*model.Booking, error) {
	return UpdateStatus(ctx, cq.Conn, bid, status, notes)
}

func (cq connQueryer) ClaimHoldRelease(ctx context.Context, bid uuid.UUID) (bool, error) {
	return ClaimHoldRelease(ctx, cq.Conn, bid)
}

func (cq connQueryer) List(ctx context.Context, f repo.BookingFilter) ([]model.Booking, int64, error) {
	return List(ctx, cq.Conn, f)
}

func (cq connQueryer) ListForEmail(ctx context.Context, email string) ([]model.Booking, error) {
	return ListForEmail(ctx, cq.Conn, email)
}

type txQueryer struct {
	*postgres.Tx
}

func (bookings *Repo) Tx(tx repo.Tx) repo.BookingsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, b *model.Booking) error {
	return Create(ctx, tq.Tx, b)
}

func (tq txQueryer) GetByID(ctx context.Context, bid uuid.UUID) (*model.Booking, error) {
	return GetByID(ctx, tq.Tx, bid)
}

func (tq txQueryer) GetByIDForUpdate(ctx context.Context, bid uuid.UUID) (*model.Booking, error) {
	return GetByIDForUpdate(ctx, tq.Tx, bid)
}

func (tq txQueryer) UpdateStatus(ctx context.Context, bid uuid.UUID, status model.BookingStatus, notes *string) (*model.Booking, error) {
	return UpdateStatus(ctx, tq.Tx, bid, status, notes)
}

func (tq txQueryer) ClaimHoldRelease(ctx context.Context, bid uuid.UUID) (bool, error) {
	return ClaimHoldRelease(ctx, tq.Tx, bid)
}

func (tq txQueryer) List(ctx context.Context, f repo.BookingFilter) ([]model.Booking, int64, error) {
	return List(ctx, tq.Tx, f)
}

func (tq txQueryer) ListForEmail(ctx context.Context, email string) ([]model.Booking, error) {
	return ListForEmail(ctx, tq.Tx, email)
}
