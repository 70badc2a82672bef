package ordersrp

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

func (orders *Repo) Conn(c repo.Conn) repo.OrdersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, o *model.Order) error {
	return Create(ctx, cq.Conn, o)
}

func (cq connQueryer) GetByID(ctx context.Context, oid uuid.UUID) (*model.Order, error) {
	return GetByID(ctx, cq.Conn, oid)
}

func (cq connQueryer) UpdateStatus(ctx context.Context, oid uuid.UUID, status model.OrderStatus, tracking *string) (*model.Order, error) {
	return UpdateStatus(ctx, cq.Conn, oid, status, tracking)
}

func (cq connQueryer) List(ctx context.Context, f repo.OrderFilter) ([]model.Order, int64, error) {
	return List(ctx, cq.Conn, f)
}

type txQueryer struct {
	*postgres.Tx
}

func (orders *Repo) Tx(tx repo.Tx) repo.OrdersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, o *model.Order) error {
	return Create(ctx, tq.Tx, o)
}

func (tq txQueryer) GetByID(ctx context.Context, oid uuid.UUID) (*model.Order, error) {
	return GetByID(ctx, tq.Tx, oid)
}

func (tq txQueryer) GetByIDForUpdate(ctx context.Context, oid uuid.UUID) (*model.Order, error) {
	return GetByIDForUpdate(ctx, tq.Tx, oid)
}

func (tq txQueryer) UpdateStatus(ctx context.Context, oid uuid.UUID, status model.OrderStatus, tracking *string) (*model.Order, error) {
	return UpdateStatus(ctx, tq.Tx, oid, status, tracking)
}

func (tq txQueryer) List(ctx context.Context, f repo.OrderFilter) ([]model.Order, int64, error) {
	return List(ctx, tq.Tx, f)
}
