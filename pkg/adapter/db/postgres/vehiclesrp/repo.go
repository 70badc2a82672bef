package vehiclesrp

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

func (vehicles *Repo) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, v *model.Vehicle) error {
	return Create(ctx, cq.Conn, v)
}

func (cq connQueryer) Update(ctx context.Context, vid uuid.UUID, p repo.VehiclePatch) (*model.Vehicle, error) {
	return Update(ctx, cq.Conn, vid, p)
}

func (cq connQueryer) GetByID(ctx context.Context, vid uuid.UUID) (*model.Vehicle, error) {
	return GetByID(ctx, cq.Conn, vid)
}

func (cq connQueryer) GetBySlug(ctx context.Context, slug string) (*model.Vehicle, error) {
	return GetBySlug(ctx, cq.Conn, slug)
}

func (cq connQueryer) List(ctx context.Context, q model.VehicleQuery) ([]model.Vehicle, int64, error) {
	return List(ctx, cq.Conn, q)
}

func (cq connQueryer) AdjustUnits(ctx context.Context, vid uuid.UUID, delta int) (*model.Vehicle, error) {
	return AdjustUnits(ctx, cq.Conn, vid, delta)
}

type txQueryer struct {
	*postgres.Tx
}

func (vehicles *Repo) Tx(tx repo.Tx) repo.VehiclesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, v *model.Vehicle) error {
	return Create(ctx, tq.Tx, v)
}

func (tq txQueryer) Update(ctx context.Context, vid uuid.UUID, p repo.VehiclePatch) (*model.Vehicle, error) {
	return Update(ctx, tq.Tx, vid, p)
}

func (tq txQueryer) GetByID(ctx context.Context, vid uuid.UUID) (*model.Vehicle, error) {
	return GetByID(ctx, tq.Tx, vid)
}

func (tq txQueryer) GetBySlug(ctx context.Context, slug string) (*model.Vehicle, error) {
	return GetBySlug(ctx, tq.Tx, slug)
}

func (tq txQueryer) List(ctx context.Context, q model.VehicleQuery) ([]model.Vehicle, int64, error) {
	return List(ctx, tq.Tx, q)
}

func (tq txQueryer) AdjustUnits(ctx context.Context, vid uuid.UUID, delta int) (*model.Vehicle, error) {
	return AdjustUnits(ctx, tq.Tx, vid, delta)
}
