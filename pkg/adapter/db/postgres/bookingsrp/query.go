package bookingsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/adapter/db/postgres"
	"github.com/momeni/dealerweb/pkg/core/cerr"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gBooking struct {
	BID           uuid.UUID `gorm:"primaryKey;type:uuid;column:bid"`
	Number        string    `gorm:"uniqueIndex"`
	VID           uuid.UUID `gorm:"type:uuid;column:vid"`
	VehicleModel  string
	CustomerEmail string
	CustomerName  string
	PreferredDate string
	Notes         string
	Status        string
	HoldReleased  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (gb *gBooking) TableName() string {
	return "bookings"
}

func (gb *gBooking) Model() (*model.Booking, error) {
	status, err := model.ParseBookingStatus(gb.Status)
	if err != nil {
		return nil, fmt.Errorf("status of %s: %w", gb.BID, err)
	}
	return &model.Booking{
		BID:           gb.BID,
		Number:        gb.Number,
		VehicleID:     gb.VID,
		VehicleModel:  gb.VehicleModel,
		CustomerEmail: gb.CustomerEmail,
		CustomerName:  gb.CustomerName,
		PreferredDate: gb.PreferredDate,
		Notes:         gb.Notes,
		Status:        status,
		HoldReleased:  gb.HoldReleased,
		CreatedAt:     gb.CreatedAt,
		UpdatedAt:     gb.UpdatedAt,
	}, nil
}

func toGBooking(b *model.Booking) *gBooking {
	return &gBooking{
		BID:           b.BID,
		Number:        b.Number,
		VID:           b.VehicleID,
		VehicleModel:  b.VehicleModel,
		CustomerEmail: b.CustomerEmail,
		CustomerName:  b.CustomerName,
		PreferredDate: b.PreferredDate,
		Notes:         b.Notes,
		Status:        b.Status.String(),
		HoldReleased:  b.HoldReleased,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, b *model.Booking) error {
	gdb := q.GORM(ctx)
	gb := toGBooking(b)
	if err := gdb.Create(gb).Error; err != nil {
		return postgres.ClassifyError(err)
	}
	b.CreatedAt = gb.CreatedAt
	b.UpdatedAt = gb.UpdatedAt
	return nil
}

func GetByID[Q postgres.Queryer](ctx context.Context, q Q, bid uuid.UUID) (*model.Booking, error) {
	return getByID(ctx, q, bid, false)
}

// GetByIDForUpdate additionally locks the booking row until the
// surrounding transaction ends, so the status-update flow reads the
// old status race-free. It must only be called on a transaction.
func GetByIDForUpdate(ctx context.Context, q *postgres.Tx, bid uuid.UUID) (*model.Booking, error) {
	return getByID(ctx, q, bid, true)
}

func getByID[Q postgres.Queryer](ctx context.Context, q Q, bid uuid.UUID, forUpdate bool) (*model.Booking, error) {
	gdb := q.GORM(ctx)
	if forUpdate {
		gdb = gdb.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var gb gBooking
	err := gdb.Where("bid = ?", bid).First(&gb).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(fmt.Errorf("no booking: %s", bid))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gb.Model()
}

func UpdateStatus[Q postgres.Queryer](ctx context.Context, q Q, bid uuid.UUID, status model.BookingStatus, notes *string) (*model.Booking, error) {
	updates := map[string]any{
		"status":     status.String(),
		"updated_at": time.Now(),
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	gdb := q.GORM(ctx)
	var gbs []gBooking
	gdb.Model(&gbs).Clauses(clause.Returning{}).Where(
		"bid = ?", bid,
	).Updates(updates)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	if n := len(gbs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gbs[0].Model()
}

// ClaimHoldRelease flips hold_released from false to true with a
// single conditional update and reports whether this caller performed
// the flip. A booking whose hold is already released (or which does
// not exist) yields false without an error.
func ClaimHoldRelease[Q postgres.Queryer](ctx context.Context, q Q, bid uuid.UUID) (bool, error) {
	gdb := q.GORM(ctx)
	res := gdb.Model(&gBooking{}).Where(
		"bid = ? AND hold_released = ?", bid, false,
	).Updates(map[string]any{
		"hold_released": true,
		"updated_at":    time.Now(),
	})
	if err := res.Error; err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return res.RowsAffected == 1, nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q, f repo.BookingFilter) ([]model.Booking, int64, error) {
	gdb := q.GORM(ctx).Model(&gBooking{})
	if f.Status != model.BookingStatusInvalid {
		gdb = gdb.Where("status = ?", f.Status.String())
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		gdb = gdb.Where(
			"number ILIKE ? OR customer_email ILIKE ?",
			pattern, pattern,
		)
	}
	var total int64
	if err := gdb.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	var gbs []gBooking
	err := gdb.Order("created_at desc").
		Offset(f.Offset).Limit(f.Limit).Find(&gbs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	bs := make([]model.Booking, 0, len(gbs))
	for i := range gbs {
		b, err := gbs[i].Model()
		if err != nil {
			return nil, 0, err
		}
		bs = append(bs, *b)
	}
	return bs, total, nil
}

func ListForEmail[Q postgres.Queryer](ctx context.Context, q Q, email string) ([]model.Booking, error) {
	gdb := q.GORM(ctx)
	var gbs []gBooking
	err := gdb.Where("customer_email = ?", email).
		Order("created_at desc").Find(&gbs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	bs := make([]model.Booking, 0, len(gbs))
	for i := range gbs {
		b, err := gbs[i].Model()
		if err != nil {
			return nil, err
		}
		bs = append(bs, *b)
	}
	return bs, nil
}
