package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/shopspring/decimal"
)

// ErrUnitsConflict indicates that a conditional units adjustment
// matched no row: either the vehicle does not exist anymore or its
// on-hand units are insufficient for the requested decrement. Both
// cases mean the same thing to the caller, namely that the requested
// reservation is refused against the current inventory state, so they
// are reported as one error (wrapped in a cerr.Conflict).
var ErrUnitsConflict = errors.New("inventory conflict")

// VehiclePatch describes a partial administrative update of a vehicle
// listing. Nil fields are left unchanged. A non-nil Model also
// regenerates the slug. A non-nil Units is a trusted absolute value
// which bypasses the delta-based ledger guard; only administrative
// callers may use it.
type VehiclePatch struct {
	Model     *string
	Price     *decimal.Decimal
	Currency  *string
	Mode      *model.ListingMode
	Category  *string
	Trim      *string
	Year      *int
	Location  *string
	Condition *string
	Rating    *float64
	Reviews   *int
	Colors    []string
	Images    []string
	Details   *string
	Units     *int
	Status    *model.VehicleStatus
}

// VehiclesQueryer lists the vehicle catalog operations which may run
// on a connection or in a transaction.
//
// AdjustUnits is the inventory ledger: the sole delta-based mutator
// of the Units counter. It must be implemented as a single conditional
// update filtered on `units >= max(0, -delta)`, so the check and the
// mutation are one atomic statement and concurrent decrements can
// never drive the counter negative. When the condition matches no row
// (insufficient units or unknown vehicle), a cerr.Conflict error is
// returned and the caller must treat it as a refused reservation.
type VehiclesQueryer interface {
	Create(ctx context.Context, v *model.Vehicle) error
	Update(ctx context.Context, vid uuid.UUID, p VehiclePatch) (*model.Vehicle, error)
	GetByID(ctx context.Context, vid uuid.UUID) (*model.Vehicle, error)
	GetBySlug(ctx context.Context, slug string) (*model.Vehicle, error)
	List(ctx context.Context, q model.VehicleQuery) ([]model.Vehicle, int64, error)
	AdjustUnits(ctx context.Context, vid uuid.UUID, delta int) (*model.Vehicle, error)
}

type VehiclesConnQueryer interface {
	VehiclesQueryer
}

type VehiclesTxQueryer interface {
	VehiclesQueryer
}

type Vehicles interface {
	Conn(Conn) VehiclesConnQueryer
	Tx(Tx) VehiclesTxQueryer
}
