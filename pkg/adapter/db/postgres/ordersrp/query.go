package ordersrp

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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gOrder struct {
	OID          uuid.UUID       `gorm:"primaryKey;type:uuid;column:oid"`
	Number       string          `gorm:"uniqueIndex"`
	VID          uuid.UUID       `gorm:"type:uuid;column:vid"`
	VehicleModel string
	Price        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency     string
	BuyerEmail   string
	BuyerName    string
	Address      string
	Notes        string
	Status       string
	Tracking     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (gor *gOrder) TableName() string {
	return "orders"
}

func (gor *gOrder) Model() (*model.Order, error) {
	status, err := model.ParseOrderStatus(gor.Status)
	if err != nil {
		return nil, fmt.Errorf("status of %s: %w", gor.OID, err)
	}
	return &model.Order{
		OID:          gor.OID,
		Number:       gor.Number,
		VehicleID:    gor.VID,
		VehicleModel: gor.VehicleModel,
		Price:        gor.Price,
		Currency:     gor.Currency,
		BuyerEmail:   gor.BuyerEmail,
		BuyerName:    gor.BuyerName,
		Address:      gor.Address,
		Notes:        gor.Notes,
		Status:       status,
		Tracking:     gor.Tracking,
		CreatedAt:    gor.CreatedAt,
		UpdatedAt:    gor.UpdatedAt,
	}, nil
}

func toGOrder(o *model.Order) *gOrder {
	return &gOrder{
		OID:          o.OID,
		Number:       o.Number,
		VID:          o.VehicleID,
		VehicleModel: o.VehicleModel,
		Price:        o.Price,
		Currency:     o.Currency,
		BuyerEmail:   o.BuyerEmail,
		BuyerName:    o.BuyerName,
		Address:      o.Address,
		Notes:        o.Notes,
		Status:       o.Status.String(),
		Tracking:     o.Tracking,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, o *model.Order) error {
	gdb := q.GORM(ctx)
	gor := toGOrder(o)
	if err := gdb.Create(gor).Error; err != nil {
		return postgres.ClassifyError(err)
	}
	o.CreatedAt = gor.CreatedAt
	o.UpdatedAt = gor.UpdatedAt
	return nil
}

func GetByID[Q postgres.Queryer](ctx context.Context, q Q, oid uuid.UUID) (*model.Order, error) {
	return getByID(ctx, q, oid, false)
}

// GetByIDForUpdate additionally locks the order row until the
// surrounding transaction ends, so the status-update flow reads the
// old status race-free. It must only be called on a transaction.
func GetByIDForUpdate(ctx context.Context, q *postgres.Tx, oid uuid.UUID) (*model.Order, error) {
	return getByID(ctx, q, oid, true)
}

func getByID[Q postgres.Queryer](ctx context.Context, q Q, oid uuid.UUID, forUpdate bool) (*model.Order, error) {
	gdb := q.GORM(ctx)
	if forUpdate {
		gdb = gdb.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var gor gOrder
	err := gdb.Where("oid = ?", oid).First(&gor).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(fmt.Errorf("no order: %s", oid))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gor.Model()
}

func UpdateStatus[Q postgres.Queryer](ctx context.Context, q Q, oid uuid.UUID, status model.OrderStatus, tracking *string) (*model.Order, error) {
	updates := map[string]any{
		"status":     status.String(),
		"updated_at": time.Now(),
	}
	if tracking != nil {
		updates["tracking"] = *tracking
	}
	gdb := q.GORM(ctx)
	var gos []gOrder
	gdb.Model(&gos).Clauses(clause.Returning{}).Where(
		"oid = ?", oid,
	).Updates(updates)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	if n := len(gos); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gos[0].Model()
}

func List[Q postgres.Queryer](ctx context.Context, q Q, f repo.OrderFilter) ([]model.Order, int64, error) {
	gdb := q.GORM(ctx).Model(&gOrder{})
	if f.Status != model.OrderStatusInvalid {
		gdb = gdb.Where("status = ?", f.Status.String())
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		gdb = gdb.Where(
			"number ILIKE ? OR buyer_email ILIKE ?", pattern, pattern,
		)
	}
	var total int64
	if err := gdb.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	var gos []gOrder
	err := gdb.Order("created_at desc").
		Offset(f.Offset).Limit(f.Limit).Find(&gos).Error
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	os := make([]model.Order, 0, len(gos))
	for i := range gos {
		o, err := gos[i].Model()
		if err != nil {
			return nil, 0, err
		}
		os = append(os, *o)
	}
	return os, total, nil
}
