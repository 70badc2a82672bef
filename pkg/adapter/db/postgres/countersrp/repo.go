package countersrp

import (
	"context"

	"github.com/momeni/dealerweb/pkg/adapter/db/postgres"
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

func (counters *Repo) Conn(c repo.Conn) repo.CountersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Next(ctx context.Context, name string) (int64, error) {
	return Next(ctx, cq.Conn, name)
}

type txQueryer struct {
	*postgres.Tx
}

func (counters *Repo) Tx(tx repo.Tx) repo.CountersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Next(ctx context.Context, name string) (int64, error) {
	return Next(ctx, tq.Tx, name)
}
