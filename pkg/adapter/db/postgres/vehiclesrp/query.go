package vehiclesrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/adapter/db/postgres"
	"github.com/momeni/dealerweb/pkg/core/cerr"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gVehicle struct {
	VID       uuid.UUID       `gorm:"primaryKey;type:uuid;column:vid"`
	ModelName string          `gorm:"column:model"`
	Slug      string          `gorm:"uniqueIndex"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency  string
	Mode      string
	Category  string
	Trim      string
	Year      int
	Location  string
	Condition string
	Rating    float64
	Reviews   int
	Colors    []string `gorm:"serializer:json;type:jsonb"`
	Images    []string `gorm:"serializer:json;type:jsonb"`
	Details   string
	Units     int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (gv *gVehicle) TableName() string {
	return "vehicles"
}

func (gv *gVehicle) Model() (*model.Vehicle, error) {
	mode, err := model.ParseListingMode(gv.Mode)
	if err != nil {
		return nil, fmt.Errorf("mode of %s: %w", gv.VID, err)
	}
	status, err := model.ParseVehicleStatus(gv.Status)
	if err != nil {
		return nil, fmt.Errorf("status of %s: %w", gv.VID, err)
	}
	return &model.Vehicle{
		VID:       gv.VID,
		Model:     gv.ModelName,
		Slug:      gv.Slug,
		Price:     gv.Price,
		Currency:  gv.Currency,
		Mode:      mode,
		Category:  gv.Category,
		Trim:      gv.Trim,
		Year:      gv.Year,
		Location:  gv.Location,
		Condition: gv.Condition,
		Rating:    gv.Rating,
		Reviews:   gv.Reviews,
		Colors:    gv.Colors,
		Images:    gv.Images,
		Details:   gv.Details,
		Units:     gv.Units,
		Status:    status,
		CreatedAt: gv.CreatedAt,
		UpdatedAt: gv.UpdatedAt,
	}, nil
}

func toGVehicle(v *model.Vehicle) *gVehicle {
	return &gVehicle{
		VID:       v.VID,
		ModelName: v.Model,
		Slug:      v.Slug,
		Price:     v.Price,
		Currency:  v.Currency,
		Mode:      v.Mode.String(),
		Category:  v.Category,
		Trim:      v.Trim,
		Year:      v.Year,
		Location:  v.Location,
		Condition: v.Condition,
		Rating:    v.Rating,
		Reviews:   v.Reviews,
		Colors:    v.Colors,
		Images:    v.Images,
		Details:   v.Details,
		Units:     v.Units,
		Status:    v.Status.String(),
	}
}

// gJSON serializes a string slice for a jsonb column assignment in a
// map-based Updates call, where the struct-level json serializer tag
// does not take part.
func gJSON(ss []string) string {
	b, err := json.Marshal(ss)
	if err != nil {
		panic(err) // string slices are always marshalable
	}
	return string(b)
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, v *model.Vehicle) error {
	gdb := q.GORM(ctx)
	gv := toGVehicle(v)
	if err := gdb.Create(gv).Error; err != nil {
		return postgres.ClassifyError(err)
	}
	v.CreatedAt = gv.CreatedAt
	v.UpdatedAt = gv.UpdatedAt
	return nil
}

func GetByID[Q postgres.Queryer](ctx context.Context, q Q, vid uuid.UUID) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gv gVehicle
	err := gdb.Where("vid = ?", vid).First(&gv).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(fmt.Errorf("no vehicle: %s", vid))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gv.Model()
}

func GetBySlug[Q postgres.Queryer](ctx context.Context, q Q, slug string) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gv gVehicle
	err := gdb.Where("slug = ?", slug).First(&gv).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(fmt.Errorf("no vehicle: %q", slug))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gv.Model()
}

// AdjustUnits applies delta on the vid vehicle units as one atomic
// conditional update: the row is matched only while its post-update
// units stay non-negative, so a decrement racing with others either
// wins a unit or matches nothing at all. Zero matched rows mean the
// reservation is refused (insufficient units or unknown vehicle) and
// are reported as a conflict; the storage engine serializes the
// concurrent adjustments, not this code.
func AdjustUnits[Q postgres.Queryer](ctx context.Context, q Q, vid uuid.UUID, delta int) (*model.Vehicle, error) {
	floor := 0
	if delta < 0 {
		floor = -delta
	}
	gdb := q.GORM(ctx)
	var gvs []gVehicle
	gdb.Model(&gvs).Clauses(clause.Returning{}).Where(
		"vid = ? AND units >= ?", vid, floor,
	).Updates(map[string]any{
		"units":      gorm.Expr("units + ?", delta),
		"updated_at": time.Now(),
	})
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	if n := len(gvs); n != 1 {
		return nil, cerr.Conflict(fmt.Errorf(
			"%w: adjusting %s by %+d matched %d rows",
			repo.ErrUnitsConflict, vid, delta, n,
		))
	}
	return gvs[0].Model()
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, vid uuid.UUID, p repo.VehiclePatch) (*model.Vehicle, error) {
	updates := map[string]any{
		"updated_at": time.Now(),
	}
	if p.Model != nil {
		updates["model"] = *p.Model
		// the slug is a derived column and follows renames
		updates["slug"] = model.DeriveSlug(*p.Model)
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.Currency != nil {
		updates["currency"] = *p.Currency
	}
	if p.Mode != nil {
		updates["mode"] = p.Mode.String()
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Trim != nil {
		updates["trim"] = *p.Trim
	}
	if p.Year != nil {
		updates["year"] = *p.Year
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.Condition != nil {
		updates["condition"] = *p.Condition
	}
	if p.Rating != nil {
		updates["rating"] = *p.Rating
	}
	if p.Reviews != nil {
		updates["reviews"] = *p.Reviews
	}
	if p.Colors != nil {
		updates["colors"] = gJSON(p.Colors)
	}
	if p.Images != nil {
		updates["images"] = gJSON(p.Images)
	}
	if p.Details != nil {
		updates["details"] = *p.Details
	}
	if p.Units != nil {
		// trusted absolute value, see repo.VehiclePatch
		updates["units"] = *p.Units
	}
	if p.Status != nil {
		updates["status"] = p.Status.String()
	}
	gdb := q.GORM(ctx)
	var gvs []gVehicle
	gdb.Model(&gvs).Clauses(clause.Returning{}).Where(
		"vid = ?", vid,
	).Updates(updates)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	if n := len(gvs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gvs[0].Model()
}

func List[Q postgres.Queryer](ctx context.Context, q Q, vq model.VehicleQuery) ([]model.Vehicle, int64, error) {
	gdb := q.GORM(ctx).Model(&gVehicle{})
	if vq.Status != model.VehicleStatusInvalid {
		gdb = gdb.Where("status = ?", vq.Status.String())
	}
	if vq.Slug != "" {
		gdb = gdb.Where("slug = ?", vq.Slug)
	}
	if vq.Category != "" {
		gdb = gdb.Where("category = ?", vq.Category)
	}
	if vq.Mode != model.ListingModeInvalid {
		gdb = gdb.Where("mode = ?", vq.Mode.String())
	}
	if vq.PriceMin != nil {
		gdb = gdb.Where("price >= ?", *vq.PriceMin)
	}
	if vq.PriceMax != nil {
		gdb = gdb.Where("price <= ?", *vq.PriceMax)
	}
	if vq.YearMin != nil {
		gdb = gdb.Where("year >= ?", *vq.YearMin)
	}
	if vq.YearMax != nil {
		gdb = gdb.Where("year <= ?", *vq.YearMax)
	}
	if len(vq.Conditions) > 0 {
		gdb = gdb.Where("condition IN ?", vq.Conditions)
	}
	if vq.Location != "" {
		gdb = gdb.Where("location ILIKE ?", "%"+vq.Location+"%")
	}
	if vq.InStockOnly {
		gdb = gdb.Where("units > 0")
	}
	if vq.Search != "" {
		pattern := "%" + vq.Search + "%"
		gdb = gdb.Where(
			"model ILIKE ? OR trim ILIKE ? OR category ILIKE ? OR location ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	var total int64
	if err := gdb.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	switch vq.Sort {
	case model.VehicleSortPriceAsc:
		gdb = gdb.Order("price asc")
	case model.VehicleSortPriceDesc:
		gdb = gdb.Order("price desc")
	default:
		gdb = gdb.Order("created_at desc")
	}
	var gvs []gVehicle
	err := gdb.Offset(vq.Offset).Limit(vq.Limit).Find(&gvs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	vs := make([]model.Vehicle, 0, len(gvs))
	for i := range gvs {
		v, err := gvs[i].Model()
		if err != nil {
			return nil, 0, err
		}
		vs = append(vs, *v)
	}
	return vs, total, nil
}
