package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/core/model"
)

// OrderFilter describes an administrative orders listing query.
type OrderFilter struct {
	Status model.OrderStatus // OrderStatusInvalid matches any status
	Search string            // matches order number or buyer email
	Limit  int
	Offset int
}

// OrdersQueryer lists the order operations which may run on a
// connection or in a transaction. The GetByIDForUpdate method locks
// the order row until the surrounding transaction ends and so it may
// only be used through the Tx-bound queryer; the status-update flow
// relies on that lock to read the old status race-free before
// computing the inventory side effect. Orders repositories never
// write the vehicle units counter.
type OrdersQueryer interface {
	Create(ctx context.Context, o *model.Order) error
	GetByID(ctx context.Context, oid uuid.UUID) (*model.Order, error)
	UpdateStatus(ctx context.Context, oid uuid.UUID, status model.OrderStatus, tracking *string) (*model.Order, error)
	List(ctx context.Context, f OrderFilter) ([]model.Order, int64, error)
}

type OrdersConnQueryer interface {
	OrdersQueryer
}

type OrdersTxQueryer interface {
	OrdersQueryer
	GetByIDForUpdate(ctx context.Context, oid uuid.UUID) (*model.Order, error)
}

type Orders interface {
	Conn(Conn) OrdersConnQueryer
	Tx(Tx) OrdersTxQueryer
}
